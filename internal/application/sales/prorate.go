package sales

import "github.com/shopspring/decimal"

// prorateVAT reparte el IVA total entre las líneas en proporción al peso del
// subtotal de cada una: share_i = vat * total_i / sum(totales).
//
// Cada porción se redondea a 2 decimales con redondeo bancario (half-even) y
// la última línea absorbe el residuo, de modo que la suma de las porciones
// siempre reconstruye el IVA original exacto.
func prorateVAT(vat decimal.Decimal, lineTotals []decimal.Decimal) []decimal.Decimal {
	shares := make([]decimal.Decimal, len(lineTotals))
	if len(lineTotals) == 0 {
		return shares
	}

	sum := decimal.Zero
	for _, t := range lineTotals {
		sum = sum.Add(t)
	}
	if sum.IsZero() || vat.IsZero() {
		for i := range shares {
			shares[i] = decimal.Zero
		}
		// Checkout sin subtotal: todo el IVA (si lo hay) va a la primera línea.
		shares[0] = vat
		return shares
	}

	assigned := decimal.Zero
	for i, t := range lineTotals {
		if i == len(lineTotals)-1 {
			shares[i] = vat.Sub(assigned)
			break
		}
		share := vat.Mul(t).Div(sum).RoundBank(2)
		shares[i] = share
		assigned = assigned.Add(share)
	}
	return shares
}
