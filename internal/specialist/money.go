package specialist

import (
	"fmt"
	"strconv"
	"strings"
)

// Monetary amounts travel as decimal strings with at most two fraction
// digits. Arithmetic happens on integer cents; floats never touch money.

func parseCents(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	whole, frac, _ := strings.Cut(amount, ".")
	if whole == "" || len(frac) > 2 {
		return 0, fmt.Errorf("invalid amount %q", amount)
	}
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", amount)
	}
	cents := n * 100
	if frac != "" {
		f, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q", amount)
		}
		if len(frac) == 1 {
			f *= 10
		}
		cents += f
	}
	return cents, nil
}

func formatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

func addMoney(a, b string) (string, error) {
	ca, err := parseCents(a)
	if err != nil {
		return "", err
	}
	cb, err := parseCents(b)
	if err != nil {
		return "", err
	}
	return formatCents(ca + cb), nil
}
