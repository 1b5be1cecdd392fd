package i18n

// DefaultMessages returns built-in translations for all supported locales.
// These can be overridden by loading JSON files from a directory.
func DefaultMessages() map[Locale]map[string]string {
	return map[Locale]map[string]string{
		LocalePt: ptMessages,
		LocaleEn: enMessages,
	}
}

var ptMessages = map[string]string{
	// Common errors
	"error.not_found":    "Não foi possível encontrar o usuário ou serviço. Tente novamente.",
	"error.forbidden":    "Você não tem permissão para esta ação.",
	"error.bad_request":  "Requisição inválida.",
	"error.internal":     "Ocorreu um erro interno. Tente novamente.",
	"error.validation":   "Por favor, preencha todos os campos obrigatórios.",
	"error.rate_limited": "Muitas solicitações. Aguarde um momento e tente novamente.",

	// Auth
	"auth.unauthorized":        "Você precisa estar logado para continuar.",
	"auth.invalid_credentials": "Email ou senha inválidos. Por favor, tente novamente.",
	"auth.email_required":      "Por favor, preencha o email e a senha.",
	"auth.duplicate_email":     "Este email já está cadastrado. Por favor, use um email diferente ou faça login.",
	"auth.password_mismatch":   "As senhas não coincidem.",
	"auth.password_too_short":  "A senha deve ter pelo menos %d caracteres.",
	"auth.register_success":    "Cadastro realizado com sucesso! Por favor, faça login para continuar.",
	"auth.login_success":       "Login realizado com sucesso.",
	"auth.logout_success":      "Você saiu da sua conta.",

	// Services
	"service.unknown_category": "Selecione uma categoria de serviço válida.",

	// Profile
	"profile.required_fields": "Nome Completo, Email e Profissão são obrigatórios.",
	"profile.invalid_image":   "Tipo de arquivo inválido. (JPEG, PNG, GIF, WebP).",
	"profile.image_too_large": "O arquivo é muito grande. O limite é 2MB.",
	"profile.updated":         "Perfil atualizado com sucesso!",
	"profile.own_only":        "Você só pode editar o seu próprio perfil.",

	// Chat
	"chat.empty_message":       "Por favor, escreva uma mensagem.",
	"chat.self_contact":        "Você não pode iniciar uma conversa com você mesmo.",
	"chat.no_conversations":    "Você ainda não tem conversas.",
	"chat.recording_active":    "Por favor, pare a gravação de áudio antes de enviar uma mensagem de texto.",
	"chat.not_recording":       "Nenhuma gravação em andamento.",
	"chat.microphone":          "Não foi possível acessar o microfone. Verifique as permissões.",
	"chat.recording_too_large": "A gravação é muito grande.",
}

var enMessages = map[string]string{
	// Common errors
	"error.not_found":    "The user or service could not be found. Please try again.",
	"error.forbidden":    "You are not allowed to do this.",
	"error.bad_request":  "Invalid request.",
	"error.internal":     "An internal error occurred. Please try again.",
	"error.validation":   "Please fill in every required field.",
	"error.rate_limited": "Too many requests. Please wait a moment and try again.",

	// Auth
	"auth.unauthorized":        "You need to be logged in to continue.",
	"auth.invalid_credentials": "Invalid email or password. Please try again.",
	"auth.email_required":      "Please enter your email and password.",
	"auth.duplicate_email":     "This email is already registered. Use a different email or log in.",
	"auth.password_mismatch":   "Passwords do not match.",
	"auth.password_too_short":  "The password must be at least %d characters long.",
	"auth.register_success":    "Registration complete! Please log in to continue.",
	"auth.login_success":       "Successfully logged in.",
	"auth.logout_success":      "You have been logged out.",

	// Services
	"service.unknown_category": "Select a valid service category.",

	// Profile
	"profile.required_fields": "Full name, email and profession are required.",
	"profile.invalid_image":   "Invalid file type (JPEG, PNG, GIF, WebP).",
	"profile.image_too_large": "The file is too large. The limit is 2MB.",
	"profile.updated":         "Profile updated successfully!",
	"profile.own_only":        "You can only edit your own profile.",

	// Chat
	"chat.empty_message":       "Please write a message.",
	"chat.self_contact":        "You cannot start a conversation with yourself.",
	"chat.no_conversations":    "You don't have any conversations yet.",
	"chat.recording_active":    "Please stop the audio recording before sending a text message.",
	"chat.not_recording":       "No recording in progress.",
	"chat.microphone":          "Could not access the microphone. Check the permissions.",
	"chat.recording_too_large": "The recording is too large.",
}
