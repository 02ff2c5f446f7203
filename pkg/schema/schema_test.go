package schema

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatorCompilesEmbeddedSchemas(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	assert.Equal(t, []string{
		KindClass,
		KindClassificationSystem,
		KindHypermedia,
		KindLink,
		KindMappingGroup,
		KindStyleFormat,
	}, v.Kinds())
}

func TestValidate(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	testCases := map[string]struct {
		kind    string
		doc     string
		wantErr bool
	}{
		"valid system": {
			kind: KindClassificationSystem,
			doc:  `{"id":1,"name":"TerraClass_AMZ","version":"1.0","authority_name":"INPE","description":"d","links":[{"rel":"classes","href":"http://x/classes"}]}`,
		},
		"numeric version": {
			kind: KindClassificationSystem,
			doc:  `{"id":1,"name":"PRODES","version":2.0,"authority_name":"INPE","description":"d"}`,
		},
		"system without authority": {
			kind:    KindClassificationSystem,
			doc:     `{"id":1,"name":"A","version":"1","description":"d"}`,
			wantErr: true,
		},
		"system with bad link": {
			kind:    KindClassificationSystem,
			doc:     `{"id":1,"name":"A","version":"1","authority_name":"X","description":"d","links":[{"rel":"self"}]}`,
			wantErr: true,
		},
		"class with string id": {
			kind: KindClass,
			doc:  `{"id":"7","name":"Forest","code":"F"}`,
		},
		"class with empty name": {
			kind:    KindClass,
			doc:     `{"id":7,"name":""}`,
			wantErr: true,
		},
		"mapping group": {
			kind: KindMappingGroup,
			doc:  `{"mappings":[{"source_class":"X","target_class":"Y","degree_of_similarity":0.8}]}`,
		},
		"mapping without target": {
			kind:    KindMappingGroup,
			doc:     `{"mappings":[{"source_class":"X"}]}`,
			wantErr: true,
		},
		"style format": {
			kind: KindStyleFormat,
			doc:  `{"id":1,"name":"QGIS"}`,
		},
		"hypermedia without links": {
			kind: KindHypermedia,
			doc:  `{"message":"ok"}`,
		},
		"not json": {
			kind:    KindClass,
			doc:     `{`,
			wantErr: true,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			err := v.Validate(tc.kind, []byte(tc.doc))
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalid)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateUnknownKind(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	err = v.Validate("unknown", []byte(`{}`))
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestNewValidatorBrokenSchema(t *testing.T) {
	fsys := fstest.MapFS{
		"schemas/broken.json": {Data: []byte(`{"type":`)},
	}

	_, err := newValidator(fsys, "schemas")
	assert.Error(t, err)
}
