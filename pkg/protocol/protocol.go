// Package protocol defines the wire-level event names and shared payload
// shapes exchanged between the hub and its clients. Every frame is a JSON
// object with a "type" field; unknown types are ignored by both sides.
package protocol

// Client-to-hub event types.
const (
	EvPing           = "ping"
	EvRegister       = "register"
	EvLogin          = "login"
	EvUpdateProfile  = "update_profile"
	EvMessage        = "message"
	EvEditMessage    = "edit_message"
	EvDeleteMessage  = "delete_message"
	EvAddReaction    = "add_reaction"
	EvRemoveReaction = "remove_reaction"
	EvDM             = "dm"
	EvGetDMHistory   = "get_dm_history"
	EvCreateServer   = "create_server"
	EvUpdateServer   = "update_server"
	EvDeleteServer   = "delete_server"
	EvLeaveServer    = "leave_server"
	EvKickMember     = "kick_member"
	EvCreateChannel  = "create_channel"
	EvUpdateChannel  = "update_channel"
	EvDeleteChannel  = "delete_channel"
	EvCreateInvite   = "create_invite"
	EvUseInvite      = "use_invite"
	EvCreateRole     = "create_role"
	EvDeleteRole     = "delete_role"
	EvAssignRole     = "assign_role"
	EvServerMembers  = "get_server_members"
	EvFriendRequest  = "friend_request"
	EvFriendAccept   = "friend_accept"
	EvFriendReject   = "friend_reject"
	EvFriendRemove   = "friend_remove"
	EvGetFriends     = "get_friends"
	EvBlockUser      = "block_user"
	EvUnblockUser    = "unblock_user"
	EvVoiceJoin      = "voice_join"
	EvVoiceLeave     = "voice_leave"
	EvVoiceMute      = "voice_mute"
	EvVoiceVideo     = "voice_video"
	EvVoiceScreen    = "voice_screen"
	EvVoiceSignal    = "voice_signal"
	EvCallRequest    = "dm_call_request"
	EvCallAccept     = "dm_call_accept"
	EvCallReject     = "dm_call_reject"
	EvCallSignal     = "dm_call_signal"
	EvCallEnd        = "dm_call_end"
)

// Hub-to-client event types.
const (
	EvPong                  = "pong"
	EvAuthSuccess           = "auth_success"
	EvAuthError             = "auth_error"
	EvProfileUpdated        = "profile_updated"
	EvUserUpdate            = "user_update"
	EvUserJoin              = "user_join"
	EvUserLeave             = "user_leave"
	EvMessageEdited         = "message_edited"
	EvMessageDeleted        = "message_deleted"
	EvReactionAdded         = "reaction_added"
	EvReactionRemoved       = "reaction_removed"
	EvDMSent                = "dm_sent"
	EvDMHistory             = "dm_history"
	EvServerCreated         = "server_created"
	EvServerUpdated         = "server_updated"
	EvServerDeleted         = "server_deleted"
	EvServerLeft            = "server_left"
	EvServerJoined          = "server_joined"
	EvMemberJoined          = "member_joined"
	EvMemberLeft            = "member_left"
	EvChannelCreated        = "channel_created"
	EvChannelUpdated        = "channel_updated"
	EvChannelDeleted        = "channel_deleted"
	EvRoleCreated           = "role_created"
	EvRoleDeleted           = "role_deleted"
	EvRoleAssigned          = "role_assigned"
	EvInviteCreated         = "invite_created"
	EvInviteError           = "invite_error"
	EvFriendRequestIncoming = "friend_request_incoming"
	EvFriendRequestSent     = "friend_request_sent"
	EvFriendAdded           = "friend_added"
	EvFriendRemoved         = "friend_removed"
	EvFriendError           = "friend_error"
	EvFriendsList           = "friends_list"
	EvServerMembersList     = "server_members"
	EvVoiceStateUpdate      = "voice_state_update"
	EvVoiceScreenUpdate     = "voice_screen_update"
	EvCallIncoming          = "dm_call_incoming"
	EvCallAccepted          = "dm_call_accepted"
	EvCallRejected          = "dm_call_rejected"
	EvCallEnded             = "dm_call_ended"
	EvError                 = "error"
)

// Call rejection reasons carried by dm_call_rejected.
const (
	RejectReasonBusy     = "busy"
	RejectReasonNoAnswer = "no_answer"
	RejectReasonDeclined = "declined"
)

// UserInfo is the public profile view attached to presence and roster events.
type UserInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	Status string `json:"status"`
}

// VoiceUser is one entry of a voice_state_update roster, sorted by id so
// every receiver derives the same negotiation initiator from it.
type VoiceUser struct {
	UserInfo
	Muted  bool `json:"muted"`
	Video  bool `json:"video"`
	Screen bool `json:"screen"`
}

// MemberInfo is one entry of a server_members roster.
type MemberInfo struct {
	UserInfo
	Roles   []string `json:"roles"`
	IsOwner bool     `json:"isOwner"`
}
