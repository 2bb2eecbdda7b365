package services

import "errors"

// Common service errors
var (
	ErrNotFound           = errors.New("registro não encontrado")
	ErrInvalidPassword    = errors.New("senha inválida")
	ErrUnauthorized       = errors.New("não autorizado")
	ErrInvalidState       = errors.New("transição de status inválida")
	ErrValidation         = errors.New("dados inválidos")
	ErrClientRequired     = errors.New("cliente é obrigatório")
	ErrItemsRequired      = errors.New("o pedido precisa de ao menos um item")
	ErrInvalidAmount      = errors.New("o valor do pagamento deve ser maior que zero")
	ErrInvalidInstallment = errors.New("parcela inválida")
	ErrAccountInUse       = errors.New("conta possui lançamentos e não pode ser removida")
	ErrClientHasOrders    = errors.New("cliente possui pedidos e não pode ser removido")
	ErrNoPhone            = errors.New("cliente não possui telefone cadastrado")
)
