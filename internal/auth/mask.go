package auth

// Mask hides a credential for logging. Values longer than 8 characters keep
// their first and last 4 characters; shorter non-empty values are fully hidden.
func Mask(s string) string {
	r := []rune(s)
	switch {
	case len(r) == 0:
		return ""
	case len(r) <= 8:
		return "****"
	default:
		return string(r[:4]) + "..." + string(r[len(r)-4:])
	}
}
