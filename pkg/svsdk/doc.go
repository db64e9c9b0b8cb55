/*
Package svsdk provides a client SDK for the SecureVoice identity service.

# Overview

SecureVoice keeps its logins in an HttpOnly session cookie, so a Client
behaves like one browser: it carries a cookie jar and every call made after a
successful login is authenticated as that principal. Create one Client per
citizen, admin or super-admin you want to act as.

	client, err := svsdk.NewClient("https://securevoice.example.com")

	// Check service health
	health, err := client.GetReadiness(ctx)

	// Citizen login
	user, err := client.Login(ctx, "rahim_01", "password123")

	// Session state
	check, err := client.CheckSession(ctx)

# Registration

Citizen registration is a six step flow bound to a registration session ID
returned by the first step:

	sent, err := client.SendOTP(ctx, svsdk.SendOTPRequest{Phone: "01712345678"})
	_, err = client.VerifyOTP(ctx, svsdk.VerifyOTPRequest{Phone: "01712345678", OTP: code, SessionID: sent.SessionID})
	_, err = client.VerifyNID(ctx, svsdk.VerifyNIDRequest{NID: nid, DOB: "1990-01-01", SessionID: sent.SessionID})
	_, err = client.SaveFace(ctx, sent.SessionID, faceDataURI)
	_, err = client.SaveAddress(ctx, svsdk.SaveAddressRequest{Division: "Dhaka", District: "Dhaka", SessionID: sent.SessionID})
	user, err := client.Signup(ctx, svsdk.SignupRequest{Username: "rahim_01", Email: email, Password: pw, SessionID: sent.SessionID})

Signup logs the new citizen in.

# Admins

District admins request access, wait for a super-admin decision, set their
password from the emailed link and then log in with a password followed by
an emailed one-time code:

	challenge, err := client.AdminLogin(ctx, "karim_dhaka", password)
	admin, err := client.AdminVerifyOTP(ctx, "karim_dhaka", code)

# Error Handling

Every non-success response is returned as an *APIError carrying the HTTP
status and the server's message:

	_, err := client.Login(ctx, username, password)
	if svsdk.IsStatus(err, http.StatusUnauthorized) {
		// wrong credentials
	}

# Thread Safety

A Client is safe for concurrent use. Calls made concurrently share the
same cookie jar, so they act as the same principal.
*/
package svsdk
