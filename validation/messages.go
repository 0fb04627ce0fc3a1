package validation

const (
	msgRequired   = "The %s field is required."
	msgString     = "The %s field must be a string."
	msgNumeric    = "The %s field must be a number."
	msgEmail      = "The %s field must be a valid email address."
	msgMinString  = "The %s field must be at least %s characters."
	msgMinNumeric = "The %s field must be at least %s."
	msgMaxString  = "The %s field must not be greater than %s characters."
	msgMaxNumeric = "The %s field must not be greater than %s."

	// MsgUnique y MsgExists son los mensajes de las reglas de consulta
	MsgUnique = "The :attribute has already been taken."
	MsgExists = "The selected :attribute is invalid."
)
