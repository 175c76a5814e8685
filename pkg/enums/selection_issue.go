package enums

// SelectionIssue explains why a group's selection cannot be committed yet.
type SelectionIssue string

const (
	SelectionIssueMissingRequired SelectionIssue = "missing_required"
	SelectionIssueTooFew          SelectionIssue = "too_few"
	SelectionIssueTooMany         SelectionIssue = "too_many"
	SelectionIssueUnknownOption   SelectionIssue = "unknown_option"
)

// String implements fmt.Stringer.
func (i SelectionIssue) String() string {
	return string(i)
}
