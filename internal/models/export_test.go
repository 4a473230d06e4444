package models

// ResetEncryption disables token encryption again.
func ResetEncryption() {
	encryptor = nil
}
