package kernel

type CandidateID string

func NewCandidateID(id string) CandidateID { return CandidateID(id) }
func (c CandidateID) String() string       { return string(c) }
func (c CandidateID) IsEmpty() bool        { return string(c) == "" }

type JobID string

func NewJobID(id string) JobID { return JobID(id) }
func (j JobID) String() string { return string(j) }
func (j JobID) IsEmpty() bool  { return string(j) == "" }

type EvaluationID string

func NewEvaluationID(id string) EvaluationID { return EvaluationID(id) }
func (e EvaluationID) String() string        { return string(e) }
func (e EvaluationID) IsEmpty() bool         { return string(e) == "" }
