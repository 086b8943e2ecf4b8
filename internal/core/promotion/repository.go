package promotion

import "context"

// Repository は従業員レコード永続化の抽象です。
type Repository interface {
	FindByID(ctx context.Context, id string) (*Employee, error)
	// UpdateScores はスコア構成要素と合計値を compare-and-swap で書き込みます。
	// 渡されたレコードの Version が現在の行と一致しない場合は ErrVersionConflict を返します。
	UpdateScores(ctx context.Context, e *Employee) (*Employee, error)
	List(ctx context.Context, filter ListFilter) ([]*Employee, string, error)
	// ListByScope は可視範囲内の全レコードを返します。保留キューの導出に使われます。
	ListByScope(ctx context.Context, scope ScopeFilter) ([]*Employee, error)
}

// ListFilter は一覧取得用フィルタです。Scope は必ず他の条件より先に適用されます。
type ListFilter struct {
	Scope      ScopeFilter
	Search     string
	Department string
	Branch     string
	Limit      int
	Offset     int
}
