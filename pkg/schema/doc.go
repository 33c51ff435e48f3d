// Package schema describes template variables as an explicit schema tree and
// derives the shape templates actually receive once those variables travel
// through a query string. Serializable collapses every scalar leaf (text,
// numbers, booleans, dates) into optional text, keeps null leaves, rejects
// function-typed fields, and recurses into objects and arrays while
// preserving their structure. Received applies the same transform to a
// variables bag and is the contract rendered by props.Props.
package schema
