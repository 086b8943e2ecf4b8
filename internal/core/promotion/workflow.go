package promotion

// WorkflowState は従業員が待機している承認アクションを表します。
type WorkflowState string

const (
	// StateNeedsManagerRecommendation は支店マネージャーの推薦待ちです（初期状態）。
	StateNeedsManagerRecommendation WorkflowState = "needs_manager_recommendation"
	// StateNeedsDistrictRecommendation は地区マネージャーの推薦待ちです。
	StateNeedsDistrictRecommendation WorkflowState = "needs_district_recommendation"
	// StateComplete は両方の推薦が揃った状態です。
	StateComplete WorkflowState = "complete"
)

// Classify はスコア構成要素の現在値からワークフロー状態を導出します。
// 未設定とゼロはどちらも「未入力」として扱います。副作用はなく、どの保留キューに
// 従業員を表示するかの選択にのみ使われます。
//
// 一度正の値が入った推薦を後からゼロへ戻した場合、状態は再び待機側へ戻り
// 保留キューに再掲されます。通知の発火は上方向の遷移に限られるため（dispatcher.go）、
// この巻き戻しが通知を再送したり取り消したりすることはありません。
func Classify(e *Employee) WorkflowState {
	if !hasPositive(e.TMDRec20) {
		return StateNeedsManagerRecommendation
	}
	if !hasPositive(e.DisRec15) {
		return StateNeedsDistrictRecommendation
	}
	return StateComplete
}

func hasPositive(v *float64) bool {
	return v != nil && *v > 0
}
