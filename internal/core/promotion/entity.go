package promotion

import "time"

// Field は昇進評価スコアの構成要素を表します。
type Field string

const (
	// FieldIndPMS25 は個人 PMS スコア（25% 重み）です。
	FieldIndPMS25 Field = "indpms25"
	// FieldTotalExp20 は勤続年数由来のスコア（20% 重み）です。
	FieldTotalExp20 Field = "totalexp20"
	// FieldTMDRec20 は支店マネージャーの推薦スコア（20% 重み）です。
	FieldTMDRec20 Field = "tmdrec20"
	// FieldDisRec15 は地区マネージャーの推薦スコア（15% 重み）です。
	FieldDisRec15 Field = "disrec15"
)

// fieldUpperBounds は各構成要素の上限値です。下限はすべて 0 です。
// 4 要素の合計上限は 80 であり 100 には届きませんが、これは元の制度設計を
// そのまま踏襲しています。第 5 の要素を発明したり再スケールしたりしません。
var fieldUpperBounds = map[Field]float64{
	FieldIndPMS25:   25,
	FieldTotalExp20: 20,
	FieldTMDRec20:   20,
	FieldDisRec15:   15,
}

// IsValidField はスコア構成要素として定義済みかどうかを返します。
func IsValidField(field Field) bool {
	_, ok := fieldUpperBounds[field]
	return ok
}

// Employee は昇進評価の対象となる従業員レコードです。
// スコア構成要素は「未設定」と「ゼロ」を区別するため nil 許容のポインタで保持します。
type Employee struct {
	ID         string
	FileNumber string
	FullName   string

	// 組織属性。作成時に割り当てられ、admin のみが変更します（変更操作は本サブシステム外）。
	Branch     string
	District   string
	Department string
	Region     string
	Cluster    string
	TwinBranch string

	// 人事表示用の属性。一覧と通知文面から参照されます。
	Sex              string
	JobGrade         string
	JobCategory      string
	CurrentPosition  string
	NewPosition      string
	EducationalLevel string
	FieldOfStudy     string
	EmploymentDate   *time.Time
	LastDOP          *time.Time

	// スコア構成要素。Total は導出値であり直接書き込まれることはありません。
	IndPMS25   *float64
	TotalExp20 *float64
	TMDRec20   *float64
	DisRec15   *float64
	Total      float64

	// Version は楽観的同時実行制御のための世代番号です。
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Component は指定された構成要素の現在値を返します。未設定の場合は nil です。
func (e *Employee) Component(field Field) *float64 {
	switch field {
	case FieldIndPMS25:
		return e.IndPMS25
	case FieldTotalExp20:
		return e.TotalExp20
	case FieldTMDRec20:
		return e.TMDRec20
	case FieldDisRec15:
		return e.DisRec15
	default:
		return nil
	}
}

// SetComponent は指定された構成要素に値を設定します。境界チェックは行いません。
func (e *Employee) SetComponent(field Field, value float64) {
	v := value
	switch field {
	case FieldIndPMS25:
		e.IndPMS25 = &v
	case FieldTotalExp20:
		e.TotalExp20 = &v
	case FieldTMDRec20:
		e.TMDRec20 = &v
	case FieldDisRec15:
		e.DisRec15 = &v
	}
}

// Clone は従業員レコードの深いコピーを返します。
func (e *Employee) Clone() *Employee {
	if e == nil {
		return nil
	}
	clone := *e
	clone.EmploymentDate = cloneTime(e.EmploymentDate)
	clone.LastDOP = cloneTime(e.LastDOP)
	clone.IndPMS25 = cloneFloat(e.IndPMS25)
	clone.TotalExp20 = cloneFloat(e.TotalExp20)
	clone.TMDRec20 = cloneFloat(e.TMDRec20)
	clone.DisRec15 = cloneFloat(e.DisRec15)
	return &clone
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	clone := *f
	return &clone
}
