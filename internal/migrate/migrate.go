package migrate

import (
	"encoding/binary"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

// SchemaVersion is the version this build of the code expects. Upgrades
// run inside one write transaction gated on the stored version, so a
// partially applied upgrade is never visible.
const SchemaVersion = 1

var (
	bucketMeta             = []byte("meta")
	bucketDesigns          = []byte("designs")
	bucketDesignsByProduct = []byte("designs_by_product")
	bucketCartItems        = []byte("cart_items")
	bucketDiscount         = []byte("discount")
	bucketCatalog          = []byte("catalog")

	keySchemaVersion = []byte("schema_version")
)

// Apply creates missing buckets and upgrades the stored schema version.
// It is idempotent and safe to run at every boot.
func Apply(db *bolt.DB) error {
	return db.Update(func(tx *bolt.Tx) error {
		meta, err := tx.CreateBucketIfNotExists(bucketMeta)
		if err != nil {
			return fmt.Errorf("create meta bucket: %w", err)
		}

		stored := currentVersion(meta)
		if stored > SchemaVersion {
			return fmt.Errorf("store schema version %d is newer than supported version %d", stored, SchemaVersion)
		}

		if stored < 1 {
			for _, name := range [][]byte{
				bucketDesigns,
				bucketDesignsByProduct,
				bucketCartItems,
				bucketDiscount,
				bucketCatalog,
			} {
				if _, err := tx.CreateBucketIfNotExists(name); err != nil {
					return fmt.Errorf("create bucket %s: %w", name, err)
				}
			}
		}

		if stored != SchemaVersion {
			return meta.Put(keySchemaVersion, encodeVersion(SchemaVersion))
		}
		return nil
	})
}

// Version reports the schema version stored in the database, or 0 when
// the store has never been migrated.
func Version(db *bolt.DB) (uint64, error) {
	var v uint64
	err := db.View(func(tx *bolt.Tx) error {
		meta := tx.Bucket(bucketMeta)
		if meta == nil {
			return nil
		}
		v = currentVersion(meta)
		return nil
	})
	return v, err
}

func currentVersion(meta *bolt.Bucket) uint64 {
	raw := meta.Get(keySchemaVersion)
	if len(raw) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(raw)
}

func encodeVersion(v uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return buf
}
