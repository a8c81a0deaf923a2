package enum

// BusinessStatus tracks the admin approval workflow for a registered business.
type BusinessStatus string

const (
	BusinessStatusPending  BusinessStatus = "pending"
	BusinessStatusApproved BusinessStatus = "approved"
	BusinessStatusRejected BusinessStatus = "rejected"
)

func (s BusinessStatus) String() string {
	return string(s)
}
