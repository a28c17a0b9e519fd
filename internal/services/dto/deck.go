package dto

// CreateDeckRequest - создание деки. Студент задается email-ом:
// существующий аккаунт переиспользуется, иначе создается новый
// с временным паролем.
type CreateDeckRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	StudentEmail string `json:"student_email" validate:"required,email"`
	StudentName  string `json:"student_name" validate:"omitempty,max=100"`
}

// AddDocumentRequest - прикрепление документа к деке. Ссылка
// необязательна: документ может быть просто заголовком-заметкой.
type AddDocumentRequest struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
	URL   string `json:"url" validate:"omitempty,url"`
}
