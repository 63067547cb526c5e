package domain

// Permission is the access level granted for one authority of a shop
// member. Values match the backend enum.
type Permission string

const (
	PermissionNone     Permission = "none"
	PermissionReadOnly Permission = "read-only"
	PermissionAll      Permission = "all"
)

// Valid reports whether p is a known permission.
func (p Permission) Valid() bool {
	switch p {
	case PermissionNone, PermissionReadOnly, PermissionAll:
		return true
	}
	return false
}

// Authority is an area of shop administration.
type Authority string

const (
	AuthorityMember  Authority = "member_authority"
	AuthorityOrder   Authority = "order_authority"
	AuthorityProduct Authority = "product_authority"
)

// Valid reports whether a is a known authority.
func (a Authority) Valid() bool {
	switch a {
	case AuthorityMember, AuthorityOrder, AuthorityProduct:
		return true
	}
	return false
}
