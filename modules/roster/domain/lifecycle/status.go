package lifecycle

type Status string

const (
	StatusUnemployed       Status = "unemployed"
	StatusFutureEmployment Status = "future_employment"
	StatusEmployed         Status = "employed"
	StatusSuspended        Status = "suspended"
	StatusInjured          Status = "injured"
	StatusRetired          Status = "retired"
	StatusReleased         Status = "released"
)

// CountsAsEmployed reports whether the status sits inside an open employment
// period. Suspension and injury interrupt availability, not employment.
func (s Status) CountsAsEmployed() bool {
	return s == StatusEmployed || s == StatusSuspended || s == StatusInjured
}

func (s Status) Valid() bool {
	switch s {
	case StatusUnemployed, StatusFutureEmployment, StatusEmployed,
		StatusSuspended, StatusInjured, StatusRetired, StatusReleased:
		return true
	}
	return false
}
