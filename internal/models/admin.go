package models

// AdminStats is the dashboard summary for administrators.
type AdminStats struct {
	UsersByRole      map[Role]int64          `json:"usersByRole"`
	RequestsByStatus map[RequestStatus]int64 `json:"requestsByStatus"`
	Chats            int64                   `json:"chats"`
	Messages         int64                   `json:"messages"`
	NewUsersLast7d   int64                   `json:"newUsersLast7d"`
	OnlineUsers      *int64                  `json:"onlineUsers,omitempty"`
}
