package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/broady/rpcdoc"
)

// manifest is the on-disk registry description consumed by the CLI. It is
// produced by the registry's code generation tooling.
type manifest struct {
	Title       string `json:"title"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
	ServerURL   string `json:"serverUrl,omitempty"`

	Endpoints []manifestEndpoint `json:"endpoints"`
}

type manifestEndpoint struct {
	Name         string           `json:"name"`
	RequiresAuth bool             `json:"requiresAuth"`
	Methods      []manifestMethod `json:"methods"`
}

type manifestMethod struct {
	Name   string          `json:"name"`
	Params []manifestParam `json:"params,omitempty"`
}

type manifestParam struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable,omitempty"`
}

// loadManifest reads a registry manifest and converts it into a validated
// snapshot plus document metadata.
func loadManifest(path string) (*rpcdoc.Snapshot, rpcdoc.Meta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, rpcdoc.Meta{}, fmt.Errorf("read manifest: %w", err)
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, rpcdoc.Meta{}, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	endpoints := make([]rpcdoc.Endpoint, 0, len(m.Endpoints))
	for _, ep := range m.Endpoints {
		methods := make([]rpcdoc.Method, 0, len(ep.Methods))
		for _, mm := range ep.Methods {
			params := make([]rpcdoc.Param, 0, len(mm.Params))
			for _, p := range mm.Params {
				tag, typeName := typeTag(p.Type)
				params = append(params, rpcdoc.Param{
					Name:     p.Name,
					Type:     tag,
					TypeName: typeName,
					Nullable: p.Nullable,
				})
			}
			methods = append(methods, rpcdoc.Method{Name: mm.Name, Params: params})
		}
		endpoints = append(endpoints, rpcdoc.Endpoint{
			Name:         ep.Name,
			RequiresAuth: ep.RequiresAuth,
			Methods:      methods,
		})
	}

	snap, err := rpcdoc.NewSnapshot(endpoints...)
	if err != nil {
		return nil, rpcdoc.Meta{}, err
	}

	meta := rpcdoc.Meta{
		Title:       m.Title,
		Version:     m.Version,
		Description: m.Description,
		ServerURL:   m.ServerURL,
	}
	return snap, meta, nil
}

// typeTag maps a manifest type string onto the closed tag set. Unknown
// types fall back to the opaque object tag and keep the original name for
// the documented description.
func typeTag(s string) (rpcdoc.TypeTag, string) {
	switch rpcdoc.TypeTag(s) {
	case rpcdoc.TypeInteger, rpcdoc.TypeFloat, rpcdoc.TypeText, rpcdoc.TypeBoolean,
		rpcdoc.TypeTimestamp, rpcdoc.TypeUUID, rpcdoc.TypeMapping, rpcdoc.TypeSequence:
		return rpcdoc.TypeTag(s), ""
	default:
		return rpcdoc.TypeObject, s
	}
}
