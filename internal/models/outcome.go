package models

// Status is the wire name of a classification outcome.
type Status string

const (
	StatusExact        Status = "exact"
	StatusCorrected    Status = "corrected"
	StatusUnverifiable Status = "unverifiable"
)

// Outcome is the result of classifying a provider response. It is one of
// Exact, Corrected or Unverifiable.
type Outcome interface {
	Status() Status
	isOutcome()
}

// Exact confirms the input as the given address.
type Exact struct {
	FormattedAddress string              `json:"formattedAddress"`
	Components       ExtractedComponents `json:"components"`
}

// Corrected suggests one or more addresses in place of the input.
type Corrected struct {
	Alternatives []string `json:"alternatives"`
}

// Unverifiable means no usable match was found.
type Unverifiable struct {
	Message string `json:"message"`
}

func (Exact) Status() Status        { return StatusExact }
func (Corrected) Status() Status    { return StatusCorrected }
func (Unverifiable) Status() Status { return StatusUnverifiable }

func (Exact) isOutcome()        {}
func (Corrected) isOutcome()    {}
func (Unverifiable) isOutcome() {}
