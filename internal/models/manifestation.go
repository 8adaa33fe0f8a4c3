package models

import "time"

// Manifestation types.
const (
	ManifestationShared     = "shared"
	ManifestationIndividual = "individual"
)

// ManifestationCategories mirrors the category chips in the goals UI.
var ManifestationCategories = map[string]bool{
	"travel":       true,
	"relationship": true,
	"personal":     true,
	"financial":    true,
	"home":         true,
	"career":       true,
	"health":       true,
	"other":        true,
}

// ManifestationProgressSteps are the only accepted coarse progress values,
// driven by discrete buttons in the UI.
var ManifestationProgressSteps = map[int]bool{
	0:   true,
	25:  true,
	50:  true,
	75:  true,
	100: true,
}

// Manifestation is a shared or individual goal for a pair, with optional
// milestones toggled independently of the coarse progress value.
type Manifestation struct {
	ID                  string     `bson:"_id,omitempty" json:"id"`
	PairID              string     `bson:"pair_id" json:"pair_id"`
	CreatedBy           string     `bson:"created_by" json:"created_by"`
	Title               string     `bson:"title" json:"title"`
	Description         string     `bson:"description,omitempty" json:"description,omitempty"`
	Type                string     `bson:"type" json:"type"`
	Category            string     `bson:"category" json:"category"`
	TargetDate          *time.Time `bson:"target_date,omitempty" json:"target_date,omitempty"`
	Milestones          []string   `bson:"milestones,omitempty" json:"milestones,omitempty"`
	CompletedMilestones []string   `bson:"completed_milestones,omitempty" json:"completed_milestones,omitempty"`
	Progress            int        `bson:"progress" json:"progress"` // 0-100 in steps of 25
	CreatedAt           time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `bson:"updated_at" json:"updated_at"`
}
