package metrics

// ComplexityWeights configures ProjectComplexity.
type ComplexityWeights struct {
	Base         float64 `json:"base"`
	Technology   float64 `json:"technology"`    // per technology used
	Metric       float64 `json:"metric"`        // per reported metric
	PipelineStep float64 `json:"pipeline_step"` // per technical pipeline step
	Challenge    float64 `json:"challenge"`     // per documented challenge
	Architecture float64 `json:"architecture"`  // flat bonus when an architecture is described
}

// ImpactWeights configures ProjectImpact.
type ImpactWeights struct {
	Base        float64 `json:"base"`
	Outcome     float64 `json:"outcome"`     // per listed outcome
	Metric      float64 `json:"metric"`      // per reported metric
	Improvement float64 `json:"improvement"` // per metric that carries an improvement
	Featured    float64 `json:"featured"`    // flat bonus for featured projects
}

// RelationshipWeights configures RelationshipStrength between two tech nodes.
// The result is clamped to 0..1.
type RelationshipWeights struct {
	Base         float64 `json:"base"`
	SameCategory float64 `json:"same_category"`
	Mutual       float64 `json:"mutual"`      // both nodes list each other
	Proficiency  float64 `json:"proficiency"` // scaled by the lower proficiency / 100
}

// OverlapWeights configures SkillOverlap and ProjectAffinity. The result is
// clamped to 0..1.
type OverlapWeights struct {
	Shared     float64 `json:"shared"`     // scaled by the Jaccard index of the shared lists
	Similarity float64 `json:"similarity"` // scaled by 1 - |levelA-levelB|/100
	SameGroup  float64 `json:"same_group"` // both belong to the same category
}

// DefaultComplexityWeights are the weights used for displayed complexity scores.
//
//nolint:gochecknoglobals // Scoring configuration constants
var DefaultComplexityWeights = ComplexityWeights{
	Base:         10,
	Technology:   8,
	Metric:       5,
	PipelineStep: 4,
	Challenge:    6,
	Architecture: 10,
}

// DefaultImpactWeights are the weights used for displayed impact scores.
//
//nolint:gochecknoglobals // Scoring configuration constants
var DefaultImpactWeights = ImpactWeights{
	Base:        20,
	Outcome:     12,
	Metric:      6,
	Improvement: 8,
	Featured:    10,
}

// DefaultRelationshipWeights are the weights used for ecosystem link strength.
//
//nolint:gochecknoglobals // Scoring configuration constants
var DefaultRelationshipWeights = RelationshipWeights{
	Base:         0.3,
	SameCategory: 0.2,
	Mutual:       0.2,
	Proficiency:  0.3,
}

// DefaultOverlapWeights are the weights used for skill and project links.
//
//nolint:gochecknoglobals // Scoring configuration constants
var DefaultOverlapWeights = OverlapWeights{
	Shared:     0.6,
	Similarity: 0.25,
	SameGroup:  0.15,
}
