package inbound

type SendOTPRequest struct {
	Mobile string `json:"mobile"`
}

type SendOTPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Mock    bool   `json:"mock,omitempty"`
}

type VerifyOTPRequest struct {
	Mobile string `json:"mobile"`
	OTP    string `json:"otp"`
}

type VerifyOTPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

type GoogleAuthURLResponse struct {
	URL string `json:"url"`
}
