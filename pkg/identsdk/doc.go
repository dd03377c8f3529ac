/*
Package identsdk provides a client SDK for the identity and admission
service.

# Overview

The SDK wraps the service's HTTP API: identity lifecycle, the
challenge-response handshake, proof verification and admission checks.
Create an SDKClient and call endpoint methods directly:

	client := identsdk.NewSDKClient("https://identity.example.com")

	// Check service health
	health, err := client.GetLiveness(ctx)

	// Create a server-held identity
	created, err := client.CreateIdentity(ctx, identsdk.CreateIdentityRequest{
		Metadata: map[string]string{"device": "ci-runner"},
	})

	// Challenge-response handshake for a server-held identity
	ch, err := client.BeginAuth(ctx)
	resp, err := client.Respond(ctx, created.IdentityID, identsdk.RespondRequest{
		Challenge: ch.Challenge,
		SessionID: ch.SessionID,
	})
	verdict, err := client.VerifyAuth(ctx, identsdk.VerifyRequest{
		SessionID: ch.SessionID,
		Response:  resp,
	})

A successful VerifyAuth returns a short-lived bearer session token; pass it
to the operator endpoints (admission reset, custom limits).

# Errors

Non-2xx responses unmarshal into *APIError carrying the HTTP status, a
stable error code and a human-readable description.
*/
package identsdk
