// Package common — consts.go содержит роли пользователей и статусы
// проверки записей. Значения хранятся в документах как есть, менять
// их нельзя без миграции данных.
package common

// Роли пользователей.
const (
	RoleParent = "parent"
	RoleChild  = "child"
)

// Статусы проверки записи активности.
// Запись рождается pending; родитель один раз переводит её
// в approved или rejected, обратного пути нет.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)
