package models

import "fmt"

// Socket event names shared by the services that emit them and the hub
// that delivers them.
const (
	EventConnected    = "connected"
	EventJoinChat     = "joinChat"
	EventLeaveChat    = "leaveChat"
	EventSendMessage  = "sendMessage"
	EventUserJoined   = "userJoined"
	EventNewMessage   = "newMessage"
	EventNotification = "notification"
	EventError        = "error"
)

// ChatRoom is the room every participant of a chat joins explicitly.
func ChatRoom(chatID uint) string {
	return fmt.Sprintf("chat:%d", chatID)
}

// UserRoom is joined automatically by every connection of a user.
func UserRoom(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}
