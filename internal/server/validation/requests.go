package validation

import "github.com/dmitrijs2005/matcheat/internal/server/models"

// Request bodies, one per operation. Fields are pointers so that a missing
// key and an empty string fail differently. Struct order is the order in
// which violations are reported.

type Register struct {
	Handle   *string `json:"handle" validate:"required,nonempty,alphanum,min=3,max=12"`
	Email    *string `json:"email" validate:"required,nonempty,min=6,max=256,email,tld"`
	Password *string `json:"password" validate:"required,nonempty,min=6,max=1024"`
	Image    *string `json:"image" validate:"required,nonempty,min=6,max=1024"`
}

type Login struct {
	Email    *string `json:"email" validate:"required,nonempty,min=6,max=256,email,tld"`
	Password *string `json:"password" validate:"required,nonempty,min=6,max=1024"`
}

type UploadURL struct {
	FileName *string `json:"fileName" validate:"required,nonempty,min=6,max=1024"`
	FileType *string `json:"fileType" validate:"required,nonempty,min=6,max=1024"`
}

type ChangeHandle struct {
	Handle    *string `json:"handle" validate:"required,nonempty,alphanum,min=3,max=12"`
	NewHandle *string `json:"newHandle" validate:"required,nonempty,alphanum,min=3,max=12"`
	Password  *string `json:"password" validate:"required,nonempty"`
}

type ChangeEmail struct {
	Handle   *string `json:"handle" validate:"required,nonempty,alphanum,min=3,max=12"`
	Email    *string `json:"email" validate:"required,nonempty,min=6,max=256,email,tld"`
	Password *string `json:"password" validate:"required,nonempty"`
}

// ChangePassword leaves the current password unchecked beyond presence so a
// legacy short password can still be replaced.
type ChangePassword struct {
	Handle      *string `json:"handle" validate:"required,nonempty,alphanum,min=3,max=12"`
	Password    *string `json:"password" validate:"required,nonempty"`
	NewPassword *string `json:"newPassword" validate:"required,nonempty,min=6,max=1024"`
}

type ChangeImage struct {
	Handle   *string `json:"handle" validate:"required,nonempty,alphanum,min=3,max=12"`
	Password *string `json:"password" validate:"required,nonempty"`
	Image    *string `json:"image" validate:"required,nonempty,min=6,max=1024"`
}

type ChangeSettings struct {
	Handle   *string          `json:"handle" validate:"required,nonempty,alphanum,min=3,max=12"`
	Settings *models.Settings `json:"settings" validate:"required"`
}

type DeleteAccount struct {
	Handle   *string `json:"handle" validate:"required,nonempty,alphanum,min=3,max=12"`
	Password *string `json:"password" validate:"required,nonempty"`
}

type CreateHome struct {
	Name     *string `json:"name" validate:"required,nonempty,alphanum,min=3,max=12"`
	Password *string `json:"password" validate:"required,nonempty,min=6,max=1024"`
	Image    *string `json:"image" validate:"required,nonempty,min=6,max=1024"`
}

type JoinHome struct {
	Name     *string `json:"name" validate:"required,nonempty,alphanum,min=3,max=12"`
	Handle   *string `json:"handle" validate:"required,nonempty,alphanum,min=3,max=12"`
	Password *string `json:"password" validate:"required,nonempty,min=6,max=1024"`
}

type LeaveHome struct {
	Handle *string `json:"handle" validate:"required,nonempty,alphanum,min=3,max=12"`
}
