package surveys

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// CompanySurveyStatus is one user's survey progress for one company. Each
// status lives in its own document keyed by uid+slug so updates never race
// through a shared map on the profile.
type CompanySurveyStatus struct {
	UserID         string    `firestore:"userId" json:"userId"`
	CompanySlug    string    `firestore:"companySlug" json:"companySlug"`
	CompanyName    string    `firestore:"companyName" json:"companyName"`
	PreSubmitted   bool      `firestore:"preSubmitted" json:"preSubmitted"`
	PostSubmitted  bool      `firestore:"postSubmitted" json:"postSubmitted"`
	FirstVisitDate time.Time `firestore:"firstVisitDate" json:"firstVisitDate"`
	UpdatedAt      time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// Snapshot is the profile state the eligibility evaluator works from.
type Snapshot struct {
	UserID                    string
	CompanySurveys            map[string]CompanySurveyStatus // keyed by company slug
	FirstCompanyVisitDate     time.Time                      // zero if the user never visited a company
	SubmittedInitialSurvey    bool
	SubmittedGlobalPostSurvey bool
}

// Likert is a 1-5 rating. Clients have historically sent these both as JSON
// numbers and as strings; either decodes to the integer value.
type Likert int

func (l *Likert) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*l = Likert(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("likert value must be a number or numeric string")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("likert value %q is not numeric", s)
	}
	*l = Likert(n)
	return nil
}

func (l Likert) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(l))
}

func (l Likert) Valid() bool {
	return l >= 1 && l <= 5
}

// PreSurveyResponse holds the two questions asked before a user first views a
// company page.
type PreSurveyResponse struct {
	CompanySlug     string `json:"companySlug"`
	CompanyName     string `json:"companyName"`
	OverallEthical  Likert `json:"overallEthical"`
	ConsiderWorking string `json:"considerWorking"`
}

// PostSurveyResponse is the follow-up asked after the configured delay.
type PostSurveyResponse struct {
	CompanySlug         string `json:"companySlug"`
	CompanyName         string `json:"companyName"`
	Summary             string `json:"summary"`
	OverallEthical      Likert `json:"overallEthical"`
	ConsiderWorking     string `json:"considerWorking"`
	WorkersCommunities  Likert `json:"workersCommunities"`
	EnvironmentalImpact Likert `json:"environmentalImpact"`
	Transparency        Likert `json:"transparency"`
	TrustStatements     Likert `json:"trustStatements"`
	EthicalConcerns     Likert `json:"ethicalConcerns"`
	LookedUpEthics      string `json:"lookedUpEthics"`
}

// GlobalSurveyResponse is the account-level follow-up; same evaluation block
// as the post-survey, without the company-specific questions.
type GlobalSurveyResponse struct {
	Summary             string `json:"summary"`
	WorkersCommunities  Likert `json:"workersCommunities"`
	EnvironmentalImpact Likert `json:"environmentalImpact"`
	Transparency        Likert `json:"transparency"`
	TrustStatements     Likert `json:"trustStatements"`
	EthicalConcerns     Likert `json:"ethicalConcerns"`
	LookedUpEthics      string `json:"lookedUpEthics"`
}

// SignupSurveyResponse is the initial attitude survey completed right after
// account creation.
type SignupSurveyResponse struct {
	WorkersCommunities  Likert `json:"workersCommunities"`
	EnvironmentalImpact Likert `json:"environmentalImpact"`
	Transparency        Likert `json:"transparency"`
	TrustStatements     Likert `json:"trustStatements"`
	EthicalConcerns     Likert `json:"ethicalConcerns"`
	LookedUpEthics      string `json:"lookedUpEthics"`
}

// StatusReport is what page-level triggers consume to decide which survey, if
// any, to mount.
type StatusReport struct {
	InitialSurveyRequired    bool     `json:"initialSurveyRequired"`
	PreSurveyRequired        bool     `json:"preSurveyRequired"`
	PostSurveyRequired       bool     `json:"postSurveyRequired"`
	GlobalPostSurveyRequired bool     `json:"globalPostSurveyRequired"`
	PendingPostSurveys       []string `json:"pendingPostSurveys"`
}
