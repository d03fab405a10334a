// Package accountapi defines the wire contract of the account service
// (account.proto): its messages, service descriptor and client. Messages
// encode themselves in the protobuf binary format.
package accountapi

import (
	"google.golang.org/protobuf/encoding/protowire"
)

type RegisterRequest struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

func (m *RegisterRequest) AppendProto(b []byte) []byte {
	b = appendString(b, 1, m.Email)
	b = appendString(b, 2, m.FirstName)
	b = appendString(b, 3, m.LastName)
	return appendString(b, 4, m.Password)
}

func (m *RegisterRequest) UnmarshalProto(b []byte) error {
	*m = RegisterRequest{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(num, typ, b, &m.Email)
		case 2:
			return consumeString(num, typ, b, &m.FirstName)
		case 3:
			return consumeString(num, typ, b, &m.LastName)
		case 4:
			return consumeString(num, typ, b, &m.Password)
		default:
			return skipField(num, typ, b)
		}
	})
}

type VerifyEmailRequest struct {
	Email string
	Code  string
}

func (m *VerifyEmailRequest) AppendProto(b []byte) []byte {
	b = appendString(b, 1, m.Email)
	return appendString(b, 2, m.Code)
}

func (m *VerifyEmailRequest) UnmarshalProto(b []byte) error {
	*m = VerifyEmailRequest{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(num, typ, b, &m.Email)
		case 2:
			return consumeString(num, typ, b, &m.Code)
		default:
			return skipField(num, typ, b)
		}
	})
}

type LoginRequest struct {
	Email    string
	Password string
}

func (m *LoginRequest) AppendProto(b []byte) []byte {
	b = appendString(b, 1, m.Email)
	return appendString(b, 2, m.Password)
}

func (m *LoginRequest) UnmarshalProto(b []byte) error {
	*m = LoginRequest{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(num, typ, b, &m.Email)
		case 2:
			return consumeString(num, typ, b, &m.Password)
		default:
			return skipField(num, typ, b)
		}
	})
}

type ResendVerificationRequest struct {
	Email string
}

func (m *ResendVerificationRequest) AppendProto(b []byte) []byte {
	return appendString(b, 1, m.Email)
}

func (m *ResendVerificationRequest) UnmarshalProto(b []byte) error {
	*m = ResendVerificationRequest{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeString(num, typ, b, &m.Email)
		}
		return skipField(num, typ, b)
	})
}

// LogoutRequest carries the token to revoke. When Token is empty the bearer
// token from the authorization metadata is used.
type LogoutRequest struct {
	Token string
}

func (m *LogoutRequest) AppendProto(b []byte) []byte {
	return appendString(b, 1, m.Token)
}

func (m *LogoutRequest) UnmarshalProto(b []byte) error {
	*m = LogoutRequest{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeString(num, typ, b, &m.Token)
		}
		return skipField(num, typ, b)
	})
}

type ProfileRequest struct{}

func (m *ProfileRequest) AppendProto(b []byte) []byte {
	return b
}

func (m *ProfileRequest) UnmarshalProto(b []byte) error {
	return consumeFields(b, skipField)
}

// Account is the AccountSummary message.
type Account struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Verified  bool
}

func (m *Account) AppendProto(b []byte) []byte {
	b = appendString(b, 1, m.ID)
	b = appendString(b, 2, m.Email)
	b = appendString(b, 3, m.FirstName)
	b = appendString(b, 4, m.LastName)
	return appendBool(b, 5, m.Verified)
}

func (m *Account) UnmarshalProto(b []byte) error {
	*m = Account{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(num, typ, b, &m.ID)
		case 2:
			return consumeString(num, typ, b, &m.Email)
		case 3:
			return consumeString(num, typ, b, &m.FirstName)
		case 4:
			return consumeString(num, typ, b, &m.LastName)
		case 5:
			return consumeBool(num, typ, b, &m.Verified)
		default:
			return skipField(num, typ, b)
		}
	})
}

type SessionResponse struct {
	Message string
	Token   string
	Account Account
}

func (m *SessionResponse) AppendProto(b []byte) []byte {
	b = appendString(b, 1, m.Message)
	b = appendString(b, 2, m.Token)
	return appendAccount(b, 3, m.Account)
}

func (m *SessionResponse) UnmarshalProto(b []byte) error {
	*m = SessionResponse{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(num, typ, b, &m.Message)
		case 2:
			return consumeString(num, typ, b, &m.Token)
		case 3:
			return consumeAccount(num, typ, b, &m.Account)
		default:
			return skipField(num, typ, b)
		}
	})
}

type AccountResponse struct {
	Account Account
}

func (m *AccountResponse) AppendProto(b []byte) []byte {
	return appendAccount(b, 1, m.Account)
}

func (m *AccountResponse) UnmarshalProto(b []byte) error {
	*m = AccountResponse{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeAccount(num, typ, b, &m.Account)
		}
		return skipField(num, typ, b)
	})
}

type MessageResponse struct {
	Message string
}

func (m *MessageResponse) AppendProto(b []byte) []byte {
	return appendString(b, 1, m.Message)
}

func (m *MessageResponse) UnmarshalProto(b []byte) error {
	*m = MessageResponse{}
	return consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeString(num, typ, b, &m.Message)
		}
		return skipField(num, typ, b)
	})
}
