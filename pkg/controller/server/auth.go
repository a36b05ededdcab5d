package server

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/scanbook/scanbook/pkg/domain/interfaces"
	"github.com/scanbook/scanbook/pkg/domain/types"
)

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password" masq:"secret"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password" masq:"secret"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func handleSignUp(uc interfaces.UseCase, source interfaces.TokenSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signUpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, r, "decode signup request",
				goerr.Wrap(types.ErrValidationFailed, "invalid request body"))
			return
		}

		user, err := uc.SignUp(r.Context(), req.Email, req.Password, req.Name)
		if err != nil {
			respondError(w, r, "fail to sign up", err)
			return
		}

		token, err := source.Issue(user.ID)
		if err != nil {
			respondError(w, r, "fail to issue session token", err)
			return
		}

		respondJSON(w, http.StatusCreated, tokenResponse{Token: token})
	}
}

func handleLogin(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, r, "decode login request",
				goerr.Wrap(types.ErrValidationFailed, "invalid request body"))
			return
		}

		token, err := uc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			respondError(w, r, "fail to login", err)
			return
		}

		respondJSON(w, http.StatusOK, tokenResponse{Token: token})
	}
}
