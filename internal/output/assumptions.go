package output

// DefaultAssumptions lists the modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Interest compounds monthly at APR / 12 and is rounded to the cent",
	"Minimum payment: the greater of $25 or 1% of the balance plus interest",
	"The monthly budget stays fixed; surplus goes to one target account at a time",
	"No new charges, fees or rate changes during payoff",
}
