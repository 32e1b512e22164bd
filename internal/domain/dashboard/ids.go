package dashboard

import "strings"

// CompareIDs compara ids de venta. Dos ids solo con dígitos (timestamps en ms)
// se comparan como enteros: primero por largo sin ceros a la izquierda, luego
// lexicográficamente. En cualquier otro caso la comparación es lexicográfica.
// Devuelve -1, 0 o 1.
func CompareIDs(a, b string) int {
	if isDigits(a) && isDigits(b) {
		na := strings.TrimLeft(a, "0")
		nb := strings.TrimLeft(b, "0")
		if len(na) != len(nb) {
			if len(na) < len(nb) {
				return -1
			}
			return 1
		}
		return strings.Compare(na, nb)
	}
	return strings.Compare(a, b)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
