// Package thermal collects temperatures and fan speeds, falling back
// from the management controller to the event system when the primary
// source yields nothing.
package thermal
