package constants

// PermissionRoles maps each permission to roles allowed to perform it.
// Identity checks (pool creator, engine owner) are enforced in the services;
// this table is only the coarse role gate at the router.
var PermissionRoles = map[string][]string{
	ViewData:        {Backer, Creator, Admin, Superadmin},
	CreatePool:      {Creator, Admin, Superadmin},
	ManagePool:      {Creator, Admin, Superadmin},
	ReviewPool:      {Admin, Superadmin},
	CloseFunding:    {Admin, Superadmin},
	WithdrawCreator: {Admin, Superadmin},
	ForceStatus:     {Admin, Superadmin},
	ManageAssets:    {Admin, Superadmin},
	ManageSettings:  {Admin, Superadmin},
	ClaimRefund:     {Backer, Creator, Admin, Superadmin},
}

// AllowedRole returns true if role is in the list of allowed roles for the permission.
func AllowedRole(permission, role string) bool {
	roles, ok := PermissionRoles[permission]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
