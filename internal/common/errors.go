// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях сервиса.
// Эти ошибки позволяют обработчикам различать типы проблем
// и возвращать клиенту понятные HTTP-статусы.
package common

import "errors"

// Ошибки доступа и аутентификации
var (
	// ErrUserNotFound — пользователь не найден в базе
	ErrUserNotFound = errors.New("пользователь не найден")
	// ErrWrongCredentials — неверный email или пароль
	ErrWrongCredentials = errors.New("неверный email или пароль")
	// ErrEmailTaken — пользователь с таким email уже существует
	ErrEmailTaken = errors.New("пользователь с таким email уже зарегистрирован")
	// ErrNotFamilyMember — пользователь не состоит в этой семье
	ErrNotFamilyMember = errors.New("нет доступа к данным этой семьи")
	// ErrWrongRole — операция доступна только другой роли
	ErrWrongRole = errors.New("операция недоступна для вашей роли")
	// ErrWeakPassword — пароль короче 6 символов
	ErrWeakPassword = errors.New("пароль должен быть не короче 6 символов")
)

// Ошибки семей
var (
	// ErrFamilyNotFound — семья не найдена
	ErrFamilyNotFound = errors.New("семья не найдена")
	// ErrInviteCodeNotFound — код приглашения не существует
	ErrInviteCodeNotFound = errors.New("код приглашения не найден")
	// ErrAlreadyInFamily — пользователь уже состоит в семье
	ErrAlreadyInFamily = errors.New("вы уже состоите в семье")
)

// Ошибки заданий и записей активности
var (
	// ErrActivityNotFound — задание не найдено
	ErrActivityNotFound = errors.New("задание не найдено")
	// ErrEmptyName — у задания должно быть название
	ErrEmptyName = errors.New("название не может быть пустым")
	// ErrLogNotFound — запись активности не найдена
	ErrLogNotFound = errors.New("запись активности не найдена")
	// ErrInvalidUnits — количество единиц должно быть положительным
	ErrInvalidUnits = errors.New("количество единиц должно быть положительным")
	// ErrInvalidRate — ставка должна быть положительной
	ErrInvalidRate = errors.New("ставка должна быть положительной")
	// ErrAlreadyVerified — запись уже проверена, повторная проверка запрещена
	ErrAlreadyVerified = errors.New("запись уже проверена")
	// ErrInvalidStatus — допустимы только статусы approved и rejected
	ErrInvalidStatus = errors.New("недопустимый статус проверки")
)
