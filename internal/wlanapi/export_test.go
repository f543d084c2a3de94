package wlanapi

// SetMaxProfileXMLUnits lowers the terminator scan bound for the duration of
// a test so unterminated fake documents are not read past their allocation.
func SetMaxProfileXMLUnits(n int) (restore func()) {
	prev := maxProfileXMLUnits
	maxProfileXMLUnits = n
	return func() { maxProfileXMLUnits = prev }
}
