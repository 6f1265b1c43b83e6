// Package diagnostic collects descriptor problems as errors, warnings and
// infos so a whole set of descriptors can be checked in one pass.
package diagnostic
