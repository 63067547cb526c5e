package apierr

// Backend error codes raised by the stored procedures (RAISE ... USING
// ERRCODE). Any code absent from the table is treated as an internal fault.
const (
	CodeUserSessionExpired     = "SE001"
	CodeCartSessionExpired     = "SE002"
	CodeRegisterSessionExpired = "SE003"

	CodeNoAuthority      = "AU001"
	CodeWrongCredentials = "AU002"

	CodeShopNotFound     = "NF001"
	CodeProductNotFound  = "NF002"
	CodeUserNotFound     = "NF003"
	CodeCartItemNotFound = "NF004"
	CodeMemberNotFound   = "NF005"

	CodeShopNameInUse = "UQ001"
	CodeUsernameInUse = "UQ002"
	CodeEmailInUse    = "UQ003"
	CodePhoneInUse    = "UQ004"
	CodeMemberExists  = "UQ005"

	CodeCartItemExpired = "CI001"
	CodeBadItemCount    = "CI002"

	CodeOperationFailed      = "OP001"
	CodeUnsupportedOperation = "OP002"
)

// Cookie names used by session-expired translations.
const (
	CookieUser         = "USSID"
	CookieCart         = "GSSID"
	CookieRegistration = "REGSSID"
)

var codeTable = map[string]func() *Error{
	CodeUserSessionExpired:     func() *Error { return SessionExpired(CookieUser) },
	CodeCartSessionExpired:     func() *Error { return SessionExpired(CookieCart) },
	CodeRegisterSessionExpired: func() *Error { return SessionExpired(CookieRegistration) },

	CodeNoAuthority:      Unauthorized,
	CodeWrongCredentials: Unauthorized,

	CodeShopNotFound:     func() *Error { return DataNotFound("shop") },
	CodeProductNotFound:  func() *Error { return DataNotFound("product") },
	CodeUserNotFound:     func() *Error { return DataNotFound("user") },
	CodeCartItemNotFound: func() *Error { return DataNotFound("cart item") },
	CodeMemberNotFound:   func() *Error { return DataNotFound("member") },

	CodeShopNameInUse: func() *Error { return UniqueDataConflict("shop_name") },
	CodeUsernameInUse: func() *Error { return UniqueDataConflict("username") },
	CodeEmailInUse:    func() *Error { return UniqueDataConflict("email") },
	CodePhoneInUse:    func() *Error { return UniqueDataConflict("phone") },
	CodeMemberExists:  func() *Error { return UniqueDataConflict("member") },

	CodeCartItemExpired: CartItemExpired,
	CodeBadItemCount:    func() *Error { return InvalidData("count") },

	CodeOperationFailed:      OperationFailed,
	CodeUnsupportedOperation: UnsupportedOperation,
}

// FromCode translates a backend error code. ok is false for unknown codes.
func FromCode(code string) (e *Error, ok bool) {
	fn, ok := codeTable[code]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// Codes returns every code known to the table.
func Codes() []string {
	out := make([]string, 0, len(codeTable))
	for c := range codeTable {
		out = append(out, c)
	}
	return out
}
