package encset

// FixedSeed is the application-embedded seed mixed with the device key to
// derive the store secret. Changing it makes existing files unreadable.
const FixedSeed = "$JY/X?o=h·&%v/M("

// BackupSuffix is appended to the backend file name to form the backup path.
const BackupSuffix = ".bak"

// GroupSeparator joins group identifiers in Group.
const GroupSeparator = "/"

// Environment variable names
const (
	// EnvFile is the settings file (or directory, for badger) location.
	EnvFile = "ENCSET_FILE"

	// EnvBackend selects the backend: ini, sqlite, badger or memory.
	EnvBackend = "ENCSET_BACKEND"

	// EnvKeyProvider selects the key provider: machine, file, static or vault.
	EnvKeyProvider = "ENCSET_KEY_PROVIDER"

	// EnvStaticKey holds the key material for the static provider.
	EnvStaticKey = "ENCSET_STATIC_KEY"

	// EnvKeyFile is the generated key file for the file provider.
	EnvKeyFile = "ENCSET_KEY_FILE"

	// EnvVaultKeyAlias names the Vault KV entry for the vault provider.
	EnvVaultKeyAlias = "ENCSET_VAULT_KEY_ALIAS"

	// EnvTransform selects the transformer: none, sealed, transit or dpapi.
	EnvTransform = "ENCSET_TRANSFORM"

	// EnvTransitKey names the Vault Transit key for the transit transformer.
	EnvTransitKey = "ENCSET_TRANSIT_KEY"

	// EnvTransitDerived enables Transit key derivation from the group context.
	EnvTransitDerived = "ENCSET_TRANSIT_DERIVED"

	// EnvBackupBucket enables S3 backup mirroring into the named bucket.
	EnvBackupBucket = "ENCSET_BACKUP_BUCKET"

	// EnvBackupPrefix is the S3 object key prefix for backups.
	EnvBackupPrefix = "ENCSET_BACKUP_PREFIX"

	// EnvBackupRegion is the AWS region of the backup bucket.
	EnvBackupRegion = "ENCSET_BACKUP_REGION"

	// EnvLogLevel is the log level: debug, info, warn or error.
	EnvLogLevel = "ENCSET_LOG_LEVEL"

	// EnvLogFormat is the log format: text or json.
	EnvLogFormat = "ENCSET_LOG_FORMAT"
)

// Backend names
const (
	BackendINI    = "ini"
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// Key provider names
const (
	KeyProviderMachine = "machine"
	KeyProviderFile    = "file"
	KeyProviderStatic  = "static"
	KeyProviderVault   = "vault"
)

// Transform names
const (
	TransformNone    = "none"
	TransformSealed  = "sealed"
	TransformTransit = "transit"
	TransformDPAPI   = "dpapi"
)

// Default values
const (
	DefaultDirName     = "encset"
	DefaultFileName    = "settings.ini"
	DefaultBackend     = BackendINI
	DefaultKeyProvider = KeyProviderMachine
	DefaultTransform   = TransformNone
	DefaultVaultAlias  = "default"
	DefaultBackupPref  = "encset/"
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = "text"

	// KeyFileSuffix is appended to the settings path to form the default
	// key file of the file provider.
	KeyFileSuffix = ".key"
)

// VaultKeyPathTemplate is the Vault KV v2 path holding the local storage key.
// The %s placeholder is replaced with the vault key alias.
const VaultKeyPathTemplate = "secret/data/encset/%s/local-key"
