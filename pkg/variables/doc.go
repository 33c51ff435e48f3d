// Package variables normalizes decoded template variables against a
// variables schema. It is the runtime counterpart of schema.Received: scalar
// leaves are coerced to text or dropped when absent, nulls are kept where the
// schema allows them, containers are walked in lock-step with the schema and
// function-typed fields are rejected as configuration errors.
package variables
