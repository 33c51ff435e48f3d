// Package openapi bridges variables schemas and kin-openapi. Templates that
// already publish an OpenAPI document can declare their variables as a
// component schema, and hosts can validate a received bag with kin-openapi's
// validator.
package openapi
