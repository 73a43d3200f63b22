package models

import (
	"time"
)

// Роли добровольной пожарной дружины (как в оригинальном приложении)
const (
	RoleMember            = "団員"   // рядовой
	RoleSquadLeader       = "班長"   // командир звена
	RoleSectionChief      = "部長"   // начальник отряда
	RoleDivisionChief     = "分団長"  // начальник разряда
	RoleViceDivisionChief = "副分団長" // зам. начальника разряда
	RoleBrigadeChief      = "団長"   // начальник дружины
	RoleViceBrigadeChief  = "副団長"  // зам. начальника дружины
)

// User - учётная запись члена дружины
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Division  string    `json:"division"`
	Section   string    `json:"section"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Team возвращает ключ команды пользователя
func (u *User) Team() TeamKey {
	return TeamKey{Division: u.Division, Section: u.Section}
}

// CanExport сообщает, вправе ли пользователь выгружать чек-лист команды team.
// 団長/副団長 видят все команды, 分団長/副分団長 - свой разряд,
// остальные (団員, 班長, 部長) - только свою команду.
func (u *User) CanExport(team TeamKey) bool {
	switch u.Role {
	case RoleBrigadeChief, RoleViceBrigadeChief:
		return true
	case RoleDivisionChief, RoleViceDivisionChief:
		return u.Division == team.Division
	default:
		return u.Team() == team
	}
}
