package promotion

import (
	"fmt"

	"github.com/brehanbank/promotion-service/internal/core/identity"
	"github.com/brehanbank/promotion-service/internal/core/notification"
)

// OnRecommendationWritten は推薦スコア書き込み前後のレコードを比較し、
// 次に責任を持つ役割へ送るイベント列を生成します。純粋関数であり、
// ID と作成時刻の付与および永続化はシンク側（notification.Service.Append）の責務です。
//
// 発火するのは NeedsDistrictRecommendation への遷移だけです。Complete への遷移は
// その先に待つ役割が存在しないため何も生成しません。同じ正の値を再度書き込んでも
// 遷移は起きないため、通知は値に対して冪等です。
func OnRecommendationWritten(old, updated *Employee) []notification.Notification {
	if old == nil || updated == nil {
		return nil
	}

	oldState := Classify(old)
	newState := Classify(updated)
	if oldState == newState {
		return nil
	}

	if newState != StateNeedsDistrictRecommendation || oldState != StateNeedsManagerRecommendation {
		return nil
	}

	return []notification.Notification{
		{
			EmployeeID:   updated.ID,
			EmployeeName: updated.FullName,
			Type:         notification.TypeDistrictRecommendationNeeded,
			Title:        "Manager Recommendation Updated",
			Message: fmt.Sprintf(
				"TMD Rec 20%% has been submitted for %s. District recommendation (Dis Rec 15%%) is now needed.",
				updated.FullName,
			),
			RecipientRole:  identity.RoleDistrictManager,
			RecipientScope: updated.District,
		},
	}
}
