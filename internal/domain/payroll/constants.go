package payroll

const (
	StatusPending    = "Pending"
	StatusProcessing = "Processing"
	StatusPaid       = "Paid"
)

const uniquePeriod = "payroll_account_period_key"

const exportSheet = "Payroll"

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}
