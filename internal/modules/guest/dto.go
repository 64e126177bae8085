package guest

type CreateGuestRequest struct {
	FullName      string `json:"full_name" binding:"required"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	IDProofNumber string `json:"id_proof_number"`
}

type UpdateGuestRequest struct {
	FullName      *string `json:"full_name"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	IDProofNumber *string `json:"id_proof_number"`
}

type BlacklistRequest struct {
	Blacklisted *bool `json:"blacklisted" binding:"required"`
}
