package domain

// CompatibilityReport is the synastry payload returned by the remote
// compatibility service. This system validates its shape only; the scoring
// algorithm lives on the remote side and is never reproduced here.
type CompatibilityReport struct {
	OverallScore    int            `json:"overall_score"`     // 0..100
	PerSystemScores map[string]int `json:"per_system_scores"` // system name -> 0..100
	SynastryAspects []string       `json:"synastry_aspects"`  // ordered descriptions
}
