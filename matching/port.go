package matching

import (
	"context"

	"github.com/compasshq/compass/matching/hierarchy"
	"github.com/compasshq/compass/pkg/kernel"
)

// LevelClassifier classifies free seniority text into a level with confidence.
type LevelClassifier interface {
	Classify(text string, isJobPosting bool) hierarchy.Classification
}

// LocationScorer turns a candidate's transport preferences and a job address
// into a 0-1 location quality score. The scorer depends only on this contract
// so the location subsystem can be substituted in tests.
type LocationScorer interface {
	ScoreLocation(ctx context.Context, prefs TransportPreferences, jobAddress kernel.Address, listeningReason string) (float64, error)
}

// ExtractionStatus qualifies a record returned by the extraction collaborator.
// A fallback record is never silently indistinguishable from a real one.
type ExtractionStatus string

const (
	ExtractionComplete ExtractionStatus = "COMPLETE"
	ExtractionPartial  ExtractionStatus = "PARTIAL"
	ExtractionUnparsed ExtractionStatus = "UNPARSED"
)

// ExtractedCandidate is the structured record handed back by the external
// text-extraction collaborator for a resume. Fields the text did not mention
// stay at their zero value; Status says how much to trust the record.
type ExtractedCandidate struct {
	Profile CandidateProfile `json:"profile"`
	Status  ExtractionStatus `json:"status"`
}

// ExtractedJob is the collaborator's structured record for a job posting.
type ExtractedJob struct {
	Requisition JobRequisition   `json:"requisition"`
	Status      ExtractionStatus `json:"status"`
}

// ProfileExtractor is the external LLM/text-extraction collaborator. It never
// fails for "field not mentioned"; missing data is encoded as zero values and
// a non-COMPLETE status.
type ProfileExtractor interface {
	ExtractCandidate(ctx context.Context, resumeText string) (*ExtractedCandidate, error)
	ExtractJob(ctx context.Context, jobText string) (*ExtractedJob, error)
}
