package descriptor_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zpkg/internal/adapters/docstore"
	"go.trai.ch/zpkg/internal/adapters/versiongate"
	"go.trai.ch/zpkg/internal/core/domain"
	"go.trai.ch/zpkg/internal/core/ports/mocks"
	"go.trai.ch/zpkg/internal/engine/descriptor"
	"go.uber.org/mock/gomock"
)

type env struct {
	fs     *docstore.MemFS
	store  *docstore.Store
	gate   *versiongate.Gate
	logger *mocks.MockLogger
}

func newEnv(t *testing.T) *env {
	t.Helper()

	ctrl := gomock.NewController(t)
	fsys := docstore.NewMemFS()
	gate, err := versiongate.New(domain.SchemaVersion)
	require.NoError(t, err)

	return &env{
		fs:     fsys,
		store:  docstore.NewStore(fsys),
		gate:   gate,
		logger: mocks.NewMockLogger(ctrl),
	}
}

func (e *env) seed(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, e.fs.WriteFile(path, []byte(content), domain.FilePerm))
}

func (e *env) open(t *testing.T, path string) *descriptor.Package {
	t.Helper()
	pkg, err := descriptor.Open(e.store, e.gate, e.logger, path)
	require.NoError(t, err)
	return pkg
}

func boolPtr(b bool) *bool {
	return &b
}

func TestOpen_Fresh(t *testing.T) {
	e := newEnv(t)
	pkg := e.open(t, "zos.json")

	assert.False(t, pkg.Exists())
	assert.Equal(t, map[string]string{}, pkg.Dependencies())
	assert.Equal(t, map[string]string{}, pkg.Contracts())
	assert.False(t, pkg.IsLib())
	assert.True(t, pkg.IsLightweight())
	assert.Equal(t, domain.SchemaVersion, pkg.SchemaVersion())
	assert.Empty(t, pkg.Name())
	assert.Empty(t, pkg.Version())
	assert.False(t, pkg.HasDependencies())
	assert.False(t, pkg.HasContracts())
}

func TestOpen_DefaultPath(t *testing.T) {
	e := newEnv(t)
	pkg := e.open(t, "")

	assert.Equal(t, domain.DefaultManifestFileName, pkg.Path())
}

func TestOpen_Existing(t *testing.T) {
	e := newEnv(t)
	e.seed(t, "zos.json", `{
		"zosversion": "2.2",
		"name": "token",
		"version": "0.4.0",
		"lib": true,
		"dependencies": {"openzeppelin-zos": "^1.9.0"},
		"contracts": {"Token": "StandardToken"}
	}`)

	pkg := e.open(t, "zos.json")

	assert.True(t, pkg.Exists())
	assert.Equal(t, "token", pkg.Name())
	assert.Equal(t, "0.4.0", pkg.Version())
	assert.True(t, pkg.IsLib())
	assert.False(t, pkg.IsLightweight())
	assert.Equal(t, map[string]string{"openzeppelin-zos": "^1.9.0"}, pkg.Dependencies())
	assert.Equal(t, map[string]string{"Token": "StandardToken"}, pkg.Contracts())
	assert.False(t, pkg.Modified())
}

func TestOpen_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "unsupported schema", content: `{"zosversion": "1.0"}`, wantErr: domain.ErrSchemaVersionMismatch},
		{name: "missing schema", content: `{"name": "token"}`, wantErr: domain.ErrSchemaVersionMismatch},
		{name: "wrong field type", content: `{"zosversion": "2.2", "name": 42}`, wantErr: domain.ErrManifestDecode},
		{name: "not json", content: `{`, wantErr: domain.ErrDocumentParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			e.seed(t, "zos.json", tt.content)

			_, err := descriptor.Open(e.store, e.gate, e.logger, "zos.json")
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr.Error())
		})
	}
}

func TestOpen_UsesCollaborators(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockDocumentStore(ctrl)
	gate := mocks.NewMockVersionGate(ctrl)
	log := mocks.NewMockLogger(ctrl)

	gomock.InOrder(
		store.EXPECT().LoadIfExists("pkg.json").Return(nil, nil),
		gate.EXPECT().Check(domain.SchemaVersion, "pkg.json").Return(nil),
	)

	pkg, err := descriptor.Open(store, gate, log, "pkg.json")
	require.NoError(t, err)
	assert.Equal(t, "pkg.json", pkg.Path())
}

func TestOpen_StoreErrorPassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockDocumentStore(ctrl)
	gate := mocks.NewMockVersionGate(ctrl)

	storeErr := errors.New("disk on fire")
	store.EXPECT().LoadIfExists("zos.json").Return(nil, storeErr)

	_, err := descriptor.Open(store, gate, mocks.NewMockLogger(ctrl), "zos.json")
	assert.Equal(t, storeErr, err)
}

func TestPackage_Identity(t *testing.T) {
	e := newEnv(t)
	pkg := e.open(t, "zos.json")

	assert.False(t, pkg.HasName(""))
	assert.False(t, pkg.IsCurrentVersion(""))

	pkg.SetName("token")
	pkg.SetVersion("1.0.0")

	assert.True(t, pkg.HasName("token"))
	assert.False(t, pkg.HasName("Token"))
	assert.True(t, pkg.IsCurrentVersion("1.0.0"))
	assert.False(t, pkg.IsCurrentVersion("1.0.1"))
}

func TestPackage_IsLightweight(t *testing.T) {
	tests := []struct {
		name    string
		publish *bool
		lib     *bool
		want    bool
	}{
		{name: "both unset", want: true},
		{name: "both false", publish: boolPtr(false), lib: boolPtr(false), want: true},
		{name: "publish", publish: boolPtr(true), want: false},
		{name: "lib", lib: boolPtr(true), want: false},
		{name: "both", publish: boolPtr(true), lib: boolPtr(true), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			pkg := e.open(t, "zos.json")

			if tt.publish != nil {
				pkg.SetPublish(*tt.publish)
			}
			if tt.lib != nil {
				pkg.SetLib(*tt.lib)
			}

			assert.Equal(t, tt.want, pkg.IsLightweight())
		})
	}
}

func TestPackage_Dependencies(t *testing.T) {
	e := newEnv(t)
	pkg := e.open(t, "zos.json")

	pkg.SetDependency("openzeppelin-zos", "^1.2.0")
	assert.True(t, pkg.HasDependency("openzeppelin-zos"))
	assert.True(t, pkg.HasDependencies())

	constraint, ok := pkg.DependencyVersion("openzeppelin-zos")
	assert.True(t, ok)
	assert.Equal(t, "^1.2.0", constraint)

	assert.True(t, pkg.DependencyMatches("openzeppelin-zos", "1.4.0"))
	assert.False(t, pkg.DependencyMatches("openzeppelin-zos", "2.0.0"))
	assert.False(t, pkg.DependencyMatches("missing", "1.4.0"))

	pkg.SetDependency("openzeppelin-zos", "~1.2.0")
	assert.False(t, pkg.DependencyMatches("openzeppelin-zos", "1.4.0"))

	pkg.UnsetDependency("openzeppelin-zos")
	assert.False(t, pkg.HasDependency("openzeppelin-zos"))
	assert.False(t, pkg.HasDependencies())

	// Removing an absent dependency is a no-op.
	pkg.UnsetDependency("openzeppelin-zos")
}

func TestPackage_DependencyNamesSorted(t *testing.T) {
	e := newEnv(t)
	pkg := e.open(t, "zos.json")

	pkg.SetDependency("zeta", "1.0.0")
	pkg.SetDependency("alpha", "1.0.0")
	pkg.SetDependency("Mid", "1.0.0")

	assert.Equal(t, []string{"Mid", "alpha", "zeta"}, pkg.DependencyNames())
}

func TestPackage_EmptyConstraintIsNotADependency(t *testing.T) {
	e := newEnv(t)
	pkg := e.open(t, "zos.json")

	pkg.SetDependency("lib", "")

	_, ok := pkg.DependencyVersion("lib")
	assert.True(t, ok)
	assert.False(t, pkg.HasDependency("lib"))
	assert.False(t, pkg.DependencyMatches("lib", "1.0.0"))
}

func TestPackage_DependenciesWithoutMapping(t *testing.T) {
	e := newEnv(t)
	e.seed(t, "zos.json", `{"zosversion": "2.2"}`)
	pkg := e.open(t, "zos.json")

	assert.Equal(t, map[string]string{}, pkg.Dependencies())
	assert.Empty(t, pkg.DependencyNames())
	pkg.UnsetDependency("anything")

	pkg.SetDependency("lib", "^1.0.0")
	assert.Equal(t, map[string]string{"lib": "^1.0.0"}, pkg.Dependencies())
}

func TestPackage_SnapshotsDoNotAlias(t *testing.T) {
	e := newEnv(t)
	pkg := e.open(t, "zos.json")
	pkg.SetDependency("lib", "^1.0.0")
	require.NoError(t, pkg.AddContract("Token"))

	deps := pkg.Dependencies()
	deps["other"] = "1.0.0"
	contracts := pkg.Contracts()
	contracts["Other"] = "Other"

	assert.False(t, pkg.HasDependency("other"))
	assert.False(t, pkg.HasContract("Other"))

	m := pkg.Manifest()
	m.Dependencies["third"] = "1.0.0"
	assert.False(t, pkg.HasDependency("third"))
}

func TestPackage_Contracts(t *testing.T) {
	e := newEnv(t)
	pkg := e.open(t, "zos.json")

	require.NoError(t, pkg.AddContract("Foo"))
	name, ok := pkg.Contract("Foo")
	assert.True(t, ok)
	assert.Equal(t, "Foo", name)

	require.NoError(t, pkg.AddContract("Foo", "FooV2"))
	name, _ = pkg.Contract("Foo")
	assert.Equal(t, "FooV2", name)

	require.NoError(t, pkg.AddContract("Bar", ""))
	name, _ = pkg.Contract("Bar")
	assert.Equal(t, "Bar", name)

	assert.True(t, pkg.HasContracts())
	assert.Equal(t, []string{"Bar", "Foo"}, pkg.ContractAliases())

	pkg.UnsetContract("Foo")
	assert.False(t, pkg.HasContract("Foo"))
	pkg.UnsetContract("Foo")
}

func TestPackage_ContractNamesKeepDuplicates(t *testing.T) {
	e := newEnv(t)
	pkg := e.open(t, "zos.json")

	pkg.SetContracts(map[string]string{
		"TokenA": "StandardToken",
		"TokenB": "StandardToken",
		"Sale":   "Crowdsale",
	})

	assert.Equal(t, []string{"Sale", "TokenA", "TokenB"}, pkg.ContractAliases())
	assert.Equal(t, []string{"Crowdsale", "StandardToken", "StandardToken"}, pkg.ContractNames())
}

func TestPackage_SetContractsCopies(t *testing.T) {
	e := newEnv(t)
	pkg := e.open(t, "zos.json")

	input := map[string]string{"Token": "Token"}
	pkg.SetContracts(input)
	input["Other"] = "Other"

	assert.Equal(t, map[string]string{"Token": "Token"}, pkg.Contracts())
}

func TestPackage_AddContractErrors(t *testing.T) {
	t.Run("empty alias", func(t *testing.T) {
		e := newEnv(t)
		pkg := e.open(t, "zos.json")

		err := pkg.AddContract("")
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrInvalidContractAlias.Error())
	})

	t.Run("loaded manifest without contracts", func(t *testing.T) {
		e := newEnv(t)
		e.seed(t, "zos.json", `{"zosversion": "2.2", "name": "token"}`)
		pkg := e.open(t, "zos.json")

		err := pkg.AddContract("Token")
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrMissingContractsContainer.Error())
		assert.False(t, pkg.HasContracts())
	})

	t.Run("SetContracts provides the mapping", func(t *testing.T) {
		e := newEnv(t)
		e.seed(t, "zos.json", `{"zosversion": "2.2"}`)
		pkg := e.open(t, "zos.json")

		pkg.SetContracts(nil)
		require.NoError(t, pkg.AddContract("Token"))
		assert.True(t, pkg.HasContract("Token"))
	})
}

func TestPackage_WriteGolden(t *testing.T) {
	e := newEnv(t)
	e.logger.EXPECT().Info("Successfully written zos.json")

	pkg := e.open(t, "zos.json")
	pkg.SetName("token")
	pkg.SetVersion("0.1.0")
	pkg.SetPublish(true)
	pkg.SetDependency("openzeppelin-zos", "^1.9.0")
	require.NoError(t, pkg.AddContract("Token", "StandardToken"))

	require.NoError(t, pkg.Write())

	data, err := e.fs.ReadFile("zos.json")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "package_write", data)
}

func TestPackage_RoundTripKeepsUnknownKeys(t *testing.T) {
	e := newEnv(t)
	e.logger.EXPECT().Info(gomock.Any())
	e.seed(t, "zos.json", `{
		"zosversion": "2.2",
		"name": "token",
		"contracts": {},
		"x-custom": {"nested": [1, 2, 3]},
		"stdlib": "zos-lib"
	}`)

	pkg := e.open(t, "zos.json")
	pkg.SetVersion("1.1.0")
	require.NoError(t, pkg.Write())

	reopened := e.open(t, "zos.json")
	assert.Equal(t, "token", reopened.Name())
	assert.Equal(t, "1.1.0", reopened.Version())

	doc, err := e.store.LoadIfExists("zos.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"nested": [1, 2, 3]}`, string(doc["x-custom"]))
	assert.Equal(t, json.RawMessage(`"zos-lib"`), doc["stdlib"])
}

func TestPackage_Modified(t *testing.T) {
	e := newEnv(t)
	e.logger.EXPECT().Info(gomock.Any()).Times(1)

	pkg := e.open(t, "zos.json")
	assert.True(t, pkg.Modified(), "a fresh manifest has not been written yet")

	require.NoError(t, pkg.Write())
	assert.False(t, pkg.Modified())

	pkg.SetDependency("lib", "^1.0.0")
	assert.True(t, pkg.Modified())

	pkg.UnsetDependency("lib")
	assert.False(t, pkg.Modified())
}

func TestPackage_FingerprintStable(t *testing.T) {
	e := newEnv(t)
	e.seed(t, "a.json", `{"zosversion":"2.2","name":"x","dependencies":{"b":"1","a":"2"}}`)
	e.seed(t, "b.json", "{\n  \"dependencies\": {\"a\": \"2\", \"b\": \"1\"},\n  \"name\": \"x\",\n  \"zosversion\": \"2.2\"\n}\n")

	a, err := e.open(t, "a.json").Fingerprint()
	require.NoError(t, err)
	b, err := e.open(t, "b.json").Fingerprint()
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestPackage_WriteStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockDocumentStore(ctrl)
	gate := mocks.NewMockVersionGate(ctrl)
	log := mocks.NewMockLogger(ctrl)

	store.EXPECT().LoadIfExists("zos.json").Return(nil, nil)
	gate.EXPECT().Check(gomock.Any(), gomock.Any()).Return(nil)

	pkg, err := descriptor.Open(store, gate, log, "zos.json")
	require.NoError(t, err)

	writeErr := errors.New("read-only filesystem")
	store.EXPECT().Write("zos.json", gomock.Any()).Return(writeErr)

	assert.Equal(t, writeErr, pkg.Write())
	assert.True(t, pkg.Modified())
}

func TestOpener(t *testing.T) {
	e := newEnv(t)
	opener := descriptor.NewOpener(e.store, e.gate, e.logger)

	pkg, err := opener.Open("nested/zos.json")
	require.NoError(t, err)
	assert.Equal(t, "nested/zos.json", pkg.Path())
}
