package promotion

import "math"

// QuantizeScore はスコア値を格納精度（小数第 2 位）に揃えます。
func QuantizeScore(value float64) float64 {
	return math.Round(value*100) / 100
}

// ValidateComponent はスコア値が宣言された境界内かを書き込み前に検査します。
// 境界外の値は丸められることなく拒否されます。
func ValidateComponent(field Field, value float64) error {
	max, ok := fieldUpperBounds[field]
	if !ok {
		return ErrUnknownField
	}
	if value < 0 || value > max {
		return &ValidationError{Field: field, Value: value, Max: max}
	}
	return nil
}

// Recompute は 4 つの構成要素から合計値を再計算して設定します。
// 未設定の構成要素は 0 として扱います。構成要素の書き込みと同一トランザクション内で
// 呼び出されるため、古い合計値が後続の読み取りから観測されることはありません。
func Recompute(e *Employee) {
	sum := componentOrZero(e.IndPMS25) +
		componentOrZero(e.TotalExp20) +
		componentOrZero(e.TMDRec20) +
		componentOrZero(e.DisRec15)
	e.Total = QuantizeScore(sum)
}

func componentOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
