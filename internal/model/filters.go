package model

// 各实体的查询过滤条件。字段为 nil 表示不参与过滤。
// 经过 AccessService 收窄后的过滤器可以直接交给 repository 执行。

type RoadmapFilters struct {
	UserID *string
	Title  *string
	Status *RoadmapStatus
}

type BlockFilters struct {
	RoadmapID *string
	// RoadmapIDs 由 AccessService 注入，限定为调用者拥有的 roadmap
	RoadmapIDs []string
	Title      *string
	Status     *BlockStatus
}

type CardFilters struct {
	BlockID *string
	// BlockIDs 由 AccessService 注入，限定为调用者可达的 block
	BlockIDs  []string
	RoadmapID *string
	Term      *string
	Status    *CardStatus
}

type SessionFilters struct {
	UserID    *string
	RoadmapID *string
	BlockID   *string
	Mode      *SessionMode
	Status    *SessionStatus
}

type UserFilters struct {
	ID       *string
	Email    *string
	IsActive *bool
}
