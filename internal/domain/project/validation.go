package project

// ValidProgress reports whether p is a legal completion percentage.
func ValidProgress(p int) bool {
	return p >= 0 && p <= 100
}
