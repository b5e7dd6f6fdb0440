package models

// DealAction тип действия, доступного участнику по сделке
type DealAction string

const (
	// DealActionAccept KOL принимает сделку
	DealActionAccept DealAction = "accept"
	// DealActionReject отказ от сделки с возвратом средств владельцу
	DealActionReject DealAction = "reject"
	// DealActionClaim получение доступной суммы
	DealActionClaim DealAction = "claim"
	// DealActionDispute открытие спора
	DealActionDispute DealAction = "dispute"
	// DealActionResolve решение спора администратором
	DealActionResolve DealAction = "resolve"
	// DealActionSetEligibility изменение статуса выполнения обязательств
	DealActionSetEligibility DealAction = "setEligibility"
)
