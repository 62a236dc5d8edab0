package loader

import "github.com/razeghi71/ask/table"

// Sample returns the built-in dataset used when no file is given.
func Sample() *table.Table {
	t := table.NewTable([]string{"Name", "Salary", "Contact", "State"})
	t.AddRow([]table.Value{table.StrVal("Bilal Khan"), table.IntVal(5000), table.StrVal("03001234567"), table.StrVal("Karachi")})
	t.AddRow([]table.Value{table.StrVal("Ali Raza"), table.IntVal(7000), table.StrVal("03007654321"), table.StrVal("Lahore")})
	t.AddRow([]table.Value{table.StrVal("Sara Ahmed"), table.IntVal(6000), table.StrVal("03009876543"), table.StrVal("Islamabad")})
	return t
}
