package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// RpcVivoxToken is the Nakama RPC id clients call to sign a voice token.
	RpcVivoxToken = "voice_token"

	// MatchNameBaloot is the authoritative match handler name registered with Nakama.
	MatchNameBaloot = "baloot_match"
)

// Op codes for client messages and server events. All payloads are JSON.
const (
	// Client -> Server
	OpStartMatch     int64 = 1
	OpBid            int64 = 2
	OpGablakClaim    int64 = 3
	OpDouble         int64 = 4
	OpDeclineDouble  int64 = 5
	OpChooseVariant  int64 = 6
	OpDeclareProject int64 = 7
	OpPlayCard       int64 = 8
	OpSawaClaim      int64 = 9
	OpSawaRespond    int64 = 10
	OpQaydTrigger    int64 = 11
	OpQaydAccuse     int64 = 12
	OpQaydConfirm    int64 = 13
	OpQaydCancel     int64 = 14

	// Server -> Client
	OpLobbyState int64 = 101 // full seat snapshot, sent on join/leave/fill
	OpTableEvent int64 = 102 // engine event envelope {kind, payload}
	OpGameError  int64 = 103 // rejection {code, reason, message}
)
