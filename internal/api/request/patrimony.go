package request

// PatrimonyRangeRequest is the body of POST /api/patrimony/range.
// StartDate is informational and only echoed back in the response.
type PatrimonyRangeRequest struct {
	StartDate string `json:"startDate" validate:"omitempty,isodate"`
	EndDate   string `json:"endDate" validate:"required,isodate"`
	Owner     string `json:"owner"`
}

// PatrimonySeriesRequest is the body of POST /api/patrimony/series.
type PatrimonySeriesRequest struct {
	StartDate string `json:"startDate" validate:"required,isodate"`
	EndDate   string `json:"endDate" validate:"required,isodate"`
	StepDays  int    `json:"stepDays" validate:"required,min=1,max=3660"`
	Owner     string `json:"owner"`
}
