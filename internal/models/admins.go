package models

// AdminRequest - модель для аутентификации администратора, приходит извне
type AdminRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// AdminData - модель администратора из хранилища
type AdminData struct {
	Login        string
	PasswordHash string
}
