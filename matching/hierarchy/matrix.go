package hierarchy

// compatibilityTable is the frozen directional compatibility lookup.
// Rows are candidate levels, columns job levels, in rank order
// ENTRY, JUNIOR, SENIOR, MANAGER, DIRECTOR, EXECUTIVE.
//
// Construction rules: equal levels 1.0; one-level difference 0.8; values
// shrink as the gap grows and are asymmetric between over- and
// under-qualification (an EXECUTIVE candidate on an ENTRY job is a hard 0.0,
// the reverse direction keeps a small residual). Any change to an entry
// requires re-validating the whole table, not a local edit.
var compatibilityTable = [6][6]float64{
	// job:    ENTRY  JUNIOR SENIOR MANAGER DIRECTOR EXECUTIVE
	/* ENTRY     */ {1.00, 0.80, 0.50, 0.30, 0.20, 0.10},
	/* JUNIOR    */ {0.80, 1.00, 0.80, 0.50, 0.30, 0.20},
	/* SENIOR    */ {0.60, 0.80, 1.00, 0.80, 0.50, 0.30},
	/* MANAGER   */ {0.30, 0.60, 0.80, 1.00, 0.80, 0.50},
	/* DIRECTOR  */ {0.15, 0.30, 0.60, 0.80, 1.00, 0.80},
	/* EXECUTIVE */ {0.00, 0.10, 0.25, 0.60, 0.80, 1.00},
}

// Matrix is the static candidate-level x job-level compatibility lookup.
type Matrix struct{}

// NewMatrix returns the frozen compatibility matrix.
func NewMatrix() *Matrix {
	return &Matrix{}
}

// Compatibility returns the directional multiplier for a candidate level
// against a job level. Pure lookup, no side effects. Unknown levels reject.
func (m *Matrix) Compatibility(candidate, job Level) (float64, error) {
	if !candidate.IsValid() {
		return 0, errInvalidLevel(candidate.String())
	}
	if !job.IsValid() {
		return 0, errInvalidLevel(job.String())
	}
	return compatibilityTable[candidate.Rank()][job.Rank()], nil
}
