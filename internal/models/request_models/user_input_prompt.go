package request_models

type PromptRequest struct {
	Email string `json:"email" binding:"required,email"`
	Query string `json:"query"`
}

type MailSettingsRequest struct {
	Host     string `json:"host" binding:"required,hostname|ip"`
	Port     int    `json:"port" binding:"required,min=1,max=65535"`
	Username string `json:"username"`
	Password string `json:"password"`
	From     string `json:"from" binding:"required,email"`
	FromName string `json:"from_name"`
	UseSSL   bool   `json:"use_ssl"`
}
