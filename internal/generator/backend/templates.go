package backend

const tplModel = `package [[ .Package ]].model;

import jakarta.persistence.*;
[[- range .ModelImports ]]
import [[ . ]];
[[- end ]]
[[- if .HasJSON ]]
import org.hibernate.annotations.JdbcTypeCode;
import org.hibernate.type.SqlTypes;
[[- end ]]

@Entity
@Table(name = "[[ .Table ]]")
[[- if .Root ]]
@Inheritance(strategy = InheritanceType.JOINED)
[[- end ]]
[[- if .Parent ]]
@PrimaryKeyJoinColumn(name = "[[ .ParentColumn ]]")
[[- end ]]
public class [[ .Name ]][[ if .Parent ]] extends [[ .Parent ]][[ end ]] {
[[- if not .Parent ]]

    @Id
    @GeneratedValue(strategy = GenerationType.IDENTITY)
    private Long id;
[[- end ]]
[[- range .Fields ]]
[[ if .JSON ]]
    @JdbcTypeCode(SqlTypes.JSON)[[ end ]]
    @Column(name = "[[ .Column ]]")
    private [[ .Type ]] [[ .Name ]];
[[- end ]]
[[- range .References ]]
[[ if not .Mapped ]]
    @Column(name = "[[ .Column ]]"[[ if .Required ]], nullable = false[[ end ]])
    private Long [[ .IDField ]];
[[- else if .OneToOne ]]
    @OneToOne(fetch = FetchType.LAZY)
    @JoinColumn(name = "[[ .Column ]]", unique = true)
    private [[ .Type ]] [[ .Field ]];
[[- else ]]
    @ManyToOne(fetch = FetchType.LAZY[[ if .Required ]], optional = false[[ end ]])
    @JoinColumn(name = "[[ .Column ]]"[[ if .Required ]], nullable = false[[ end ]])
    private [[ .Type ]] [[ .Field ]];
[[- end ]]
[[- end ]]
[[- range .Collections ]]

    @OneToMany(mappedBy = "[[ .MappedBy ]]"[[ if .Cascade ]], cascade = CascadeType.ALL, orphanRemoval = true[[ end ]])
    private List<[[ .Type ]]> [[ .Field ]] = new ArrayList<>();
[[- end ]]

    public [[ .Name ]]() {
    }
[[- if not .Parent ]]

    public Long getId() {
        return id;
    }

    public void setId(Long id) {
        this.id = id;
    }
[[- end ]]
[[- range .Fields ]]

    public [[ .Type ]] [[ .Getter ]]() {
        return [[ .Name ]];
    }

    public void [[ .Setter ]]([[ .Type ]] [[ .Name ]]) {
        this.[[ .Name ]] = [[ .Name ]];
    }
[[- end ]]
[[- range .References ]]
[[- if .Mapped ]]

    public [[ .Type ]] [[ .Getter ]]() {
        return [[ .Field ]];
    }

    public void [[ .Setter ]]([[ .Type ]] [[ .Field ]]) {
        this.[[ .Field ]] = [[ .Field ]];
    }
[[- else ]]

    public Long [[ .IDGetter ]]() {
        return [[ .IDField ]];
    }

    public void [[ .IDSetter ]](Long [[ .IDField ]]) {
        this.[[ .IDField ]] = [[ .IDField ]];
    }
[[- end ]]
[[- end ]]
[[- range .Collections ]]

    public List<[[ .Type ]]> [[ .Getter ]]() {
        return [[ .Field ]];
    }

    public void [[ .Setter ]](List<[[ .Type ]]> [[ .Field ]]) {
        this.[[ .Field ]] = [[ .Field ]];
    }
[[- end ]]
[[- template "methods" .Methods ]]
}
`

const tplMethods = `[[ range . ]]

    public [[ .ReturnType ]] [[ .Name ]]([[ params .Parameters ]]) {
        throw new UnsupportedOperationException("[[ .Name ]] is not implemented yet");
    }
[[- end ]]`

const tplDTO = `package [[ .Package ]].dto;

import [[ .Package ]].model.[[ .Name ]];
[[- if .IsUser ]]
import com.fasterxml.jackson.annotation.JsonProperty;
[[- end ]]
[[- if .HasRequired ]]
import jakarta.validation.constraints.NotNull;
[[- end ]]
[[- range .DTOImports ]]
import [[ . ]];
[[- end ]]

public class [[ .Name ]]DTO[[ if .Parent ]] extends [[ .Parent ]]DTO[[ end ]] {
[[- if not .Parent ]]

    private Long id;
[[- end ]]
[[- range .Fields ]]
[[ if and $.IsUser (eq .Name $.Secret.Name) ]]
    @JsonProperty(access = JsonProperty.Access.WRITE_ONLY)[[ end ]]
    private [[ .Type ]] [[ .Name ]];
[[- end ]]
[[- range .References ]]
[[ if .Required ]]
    @NotNull[[ end ]]
    private Long [[ .IDField ]];
[[- end ]]

    public static [[ .Name ]]DTO fromEntity([[ .Name ]] entity) {
        [[ .Name ]]DTO dto = new [[ .Name ]]DTO();
        dto.fill(entity);
        return dto;
    }

    protected void fill([[ .Name ]] entity) {
[[- if .Parent ]]
        super.fill(entity);
[[- else ]]
        this.id = entity.getId();
[[- end ]]
[[- range .Fields ]]
[[- if not (and $.IsUser (eq .Name $.Secret.Name)) ]]
        this.[[ .Name ]] = entity.[[ .Getter ]]();
[[- end ]]
[[- end ]]
[[- range .References ]]
[[- if .Mapped ]]
        this.[[ .IDField ]] = entity.[[ .Getter ]]() != null ? entity.[[ .Getter ]]().getId() : null;
[[- else ]]
        this.[[ .IDField ]] = entity.[[ .IDGetter ]]();
[[- end ]]
[[- end ]]
    }

    public void applyTo([[ .Name ]] entity) {
[[- if .Parent ]]
        super.applyTo(entity);
[[- end ]]
[[- range .Fields ]]
[[- if not (and $.IsUser (eq .Name $.Secret.Name)) ]]
        entity.[[ .Setter ]](this.[[ .Name ]]);
[[- end ]]
[[- end ]]
[[- range .References ]]
[[- if not .Mapped ]]
        entity.[[ .IDSetter ]](this.[[ .IDField ]]);
[[- end ]]
[[- end ]]
    }
[[- if not .Parent ]]

    public Long getId() {
        return id;
    }

    public void setId(Long id) {
        this.id = id;
    }
[[- end ]]
[[- range .Fields ]]

    public [[ .Type ]] [[ .Getter ]]() {
        return [[ .Name ]];
    }

    public void [[ .Setter ]]([[ .Type ]] [[ .Name ]]) {
        this.[[ .Name ]] = [[ .Name ]];
    }
[[- end ]]
[[- range .References ]]

    public Long [[ .IDGetter ]]() {
        return [[ .IDField ]];
    }

    public void [[ .IDSetter ]](Long [[ .IDField ]]) {
        this.[[ .IDField ]] = [[ .IDField ]];
    }
[[- end ]]
}
`

const tplRepository = `package [[ .Package ]].repository;

import [[ .Package ]].model.[[ .Name ]];
import org.springframework.data.jpa.repository.JpaRepository;
import org.springframework.stereotype.Repository;
[[- if .IsUser ]]

import java.util.Optional;
[[- end ]]

@Repository
public interface [[ .Name ]]Repository extends JpaRepository<[[ .Name ]], Long> {
[[- if .IsUser ]]

    Optional<[[ .Name ]]> findBy[[ ucfirst .Credential.Name ]]([[ .Credential.Type ]] [[ .Credential.Name ]]);

    boolean existsBy[[ ucfirst .Credential.Name ]]([[ .Credential.Type ]] [[ .Credential.Name ]]);
[[- end ]]
}
`

const tplService = `package [[ .Package ]].service;

import [[ .Package ]].dto.[[ .Name ]]DTO;
import [[ .Package ]].exception.ResourceNotFoundException;
import [[ .Package ]].model.[[ .Name ]];
import [[ .Package ]].repository.[[ .Name ]]Repository;
[[- range .Repos ]]
import [[ $.Package ]].repository.[[ .Type ]]Repository;
[[- end ]]
[[- if .IsUser ]]
import org.springframework.security.crypto.password.PasswordEncoder;
[[- end ]]
import org.springframework.stereotype.Service;
import org.springframework.transaction.annotation.Transactional;

import java.util.List;

@Service
@Transactional
public class [[ .Name ]]Service {

    private final [[ .Name ]]Repository repository;
[[- range .Repos ]]
    private final [[ .Type ]]Repository [[ .Var ]];
[[- end ]]
[[- if .IsUser ]]
    private final PasswordEncoder passwordEncoder;
[[- end ]]

    public [[ .Name ]]Service([[ .Name ]]Repository repository[[ range .Repos ]], [[ .Type ]]Repository [[ .Var ]][[ end ]][[ if .IsUser ]], PasswordEncoder passwordEncoder[[ end ]]) {
        this.repository = repository;
[[- range .Repos ]]
        this.[[ .Var ]] = [[ .Var ]];
[[- end ]]
[[- if .IsUser ]]
        this.passwordEncoder = passwordEncoder;
[[- end ]]
    }

    @Transactional(readOnly = true)
    public List<[[ .Name ]]DTO> findAll() {
        return repository.findAll().stream().map([[ .Name ]]DTO::fromEntity).toList();
    }

    @Transactional(readOnly = true)
    public [[ .Name ]]DTO findById(Long id) {
        return [[ .Name ]]DTO.fromEntity(get(id));
    }

    public [[ .Name ]]DTO create([[ .Name ]]DTO dto) {
        [[ .Name ]] entity = new [[ .Name ]]();
        apply(dto, entity);
[[- if .IsUser ]]
        entity.[[ .Secret.Setter ]](passwordEncoder.encode(dto.[[ .Secret.Getter ]]()));
[[- end ]]
        return [[ .Name ]]DTO.fromEntity(repository.save(entity));
    }

    public [[ .Name ]]DTO update(Long id, [[ .Name ]]DTO dto) {
        [[ .Name ]] entity = get(id);
        apply(dto, entity);
[[- if .IsUser ]]
        if (dto.[[ .Secret.Getter ]]() != null) {
            entity.[[ .Secret.Setter ]](passwordEncoder.encode(dto.[[ .Secret.Getter ]]()));
        }
[[- end ]]
        return [[ .Name ]]DTO.fromEntity(repository.save(entity));
    }

    public void delete(Long id) {
        if (!repository.existsById(id)) {
            throw new ResourceNotFoundException("[[ .Name ]]", id);
        }
        repository.deleteById(id);
    }

    private [[ .Name ]] get(Long id) {
        return repository.findById(id)
                .orElseThrow(() -> new ResourceNotFoundException("[[ .Name ]]", id));
    }

    private void apply([[ .Name ]]DTO dto, [[ .Name ]] entity) {
        dto.applyTo(entity);
[[- range .ServiceReferences ]]
[[- if .Mapped ]]
        entity.[[ .Setter ]](dto.[[ .IDGetter ]]() == null ? null : [[ .RepoVar ]].findById(dto.[[ .IDGetter ]]())
                .orElseThrow(() -> new ResourceNotFoundException("[[ .Type ]]", dto.[[ .IDGetter ]]())));
[[- end ]]
[[- end ]]
    }
}
`

const tplController = `package [[ .Package ]].controller;

import [[ .Package ]].dto.[[ .Name ]]DTO;
import [[ .Package ]].service.[[ .Name ]]Service;
import jakarta.validation.Valid;
import org.springframework.http.HttpStatus;
import org.springframework.http.ResponseEntity;
import org.springframework.web.bind.annotation.*;

import java.util.List;

@RestController
@RequestMapping("[[ .Route ]]")
public class [[ .Name ]]Controller {

    private final [[ .Name ]]Service service;

    public [[ .Name ]]Controller([[ .Name ]]Service service) {
        this.service = service;
    }

    @GetMapping
    public List<[[ .Name ]]DTO> findAll() {
        return service.findAll();
    }

    @GetMapping("/{id}")
    public [[ .Name ]]DTO findById(@PathVariable Long id) {
        return service.findById(id);
    }

    @PostMapping
    public ResponseEntity<[[ .Name ]]DTO> create(@Valid @RequestBody [[ .Name ]]DTO dto) {
        return ResponseEntity.status(HttpStatus.CREATED).body(service.create(dto));
    }

    @PutMapping("/{id}")
    public [[ .Name ]]DTO update(@PathVariable Long id, @Valid @RequestBody [[ .Name ]]DTO dto) {
        return service.update(id, dto);
    }

    @DeleteMapping("/{id}")
    public ResponseEntity<Void> delete(@PathVariable Long id) {
        service.delete(id);
        return ResponseEntity.noContent().build();
    }
}
`

const tplLinkModel = `package [[ .Package ]].model;

import jakarta.persistence.*;

import java.io.Serializable;
import java.util.Objects;

@Entity
@Table(name = "[[ .Table ]]")
@IdClass([[ .Name ]].Key.class)
public class [[ .Name ]] {

    @Id
    @ManyToOne(fetch = FetchType.LAZY, optional = false)
    @JoinColumn(name = "[[ .LeftColumn ]]")
    private [[ .Left ]] [[ .LeftField ]];

    @Id
    @ManyToOne(fetch = FetchType.LAZY, optional = false)
    @JoinColumn(name = "[[ .RightCol ]]")
    private [[ .Right ]] [[ .RightField ]];

    public [[ .Left ]] get[[ ucfirst .LeftField ]]() {
        return [[ .LeftField ]];
    }

    public void set[[ ucfirst .LeftField ]]([[ .Left ]] [[ .LeftField ]]) {
        this.[[ .LeftField ]] = [[ .LeftField ]];
    }

    public [[ .Right ]] get[[ ucfirst .RightField ]]() {
        return [[ .RightField ]];
    }

    public void set[[ ucfirst .RightField ]]([[ .Right ]] [[ .RightField ]]) {
        this.[[ .RightField ]] = [[ .RightField ]];
    }

    public static class Key implements Serializable {

        private Long [[ .LeftField ]];
        private Long [[ .RightField ]];

        public Key() {
        }

        public Key(Long [[ .LeftField ]], Long [[ .RightField ]]) {
            this.[[ .LeftField ]] = [[ .LeftField ]];
            this.[[ .RightField ]] = [[ .RightField ]];
        }

        @Override
        public boolean equals(Object o) {
            if (this == o) {
                return true;
            }
            if (!(o instanceof Key other)) {
                return false;
            }
            return Objects.equals([[ .LeftField ]], other.[[ .LeftField ]])
                    && Objects.equals([[ .RightField ]], other.[[ .RightField ]]);
        }

        @Override
        public int hashCode() {
            return Objects.hash([[ .LeftField ]], [[ .RightField ]]);
        }
    }
}
`

const tplLinkDTO = `package [[ .Package ]].dto;

import [[ .Package ]].model.[[ .Name ]];
import jakarta.validation.constraints.NotNull;

public class [[ .Name ]]DTO {

    @NotNull
    private Long [[ .LeftID ]];

    @NotNull
    private Long [[ .RightID ]];

    public static [[ .Name ]]DTO fromEntity([[ .Name ]] entity) {
        [[ .Name ]]DTO dto = new [[ .Name ]]DTO();
        dto.[[ .LeftID ]] = entity.get[[ ucfirst .LeftField ]]().getId();
        dto.[[ .RightID ]] = entity.get[[ ucfirst .RightField ]]().getId();
        return dto;
    }

    public Long get[[ ucfirst .LeftID ]]() {
        return [[ .LeftID ]];
    }

    public void set[[ ucfirst .LeftID ]](Long [[ .LeftID ]]) {
        this.[[ .LeftID ]] = [[ .LeftID ]];
    }

    public Long get[[ ucfirst .RightID ]]() {
        return [[ .RightID ]];
    }

    public void set[[ ucfirst .RightID ]](Long [[ .RightID ]]) {
        this.[[ .RightID ]] = [[ .RightID ]];
    }
}
`

const tplLinkRepository = `package [[ .Package ]].repository;

import [[ .Package ]].model.[[ .Name ]];
import org.springframework.data.jpa.repository.JpaRepository;
import org.springframework.stereotype.Repository;

@Repository
public interface [[ .Name ]]Repository extends JpaRepository<[[ .Name ]], [[ .Name ]].Key> {
}
`

const tplLinkService = `package [[ .Package ]].service;

import [[ .Package ]].dto.[[ .Name ]]DTO;
import [[ .Package ]].exception.ResourceNotFoundException;
import [[ .Package ]].model.[[ .Left ]];
[[- if not .SameSide ]]
import [[ .Package ]].model.[[ .Right ]];
[[- end ]]
import [[ .Package ]].model.[[ .Name ]];
import [[ .Package ]].repository.[[ .Left ]]Repository;
[[- if not .SameSide ]]
import [[ .Package ]].repository.[[ .Right ]]Repository;
[[- end ]]
import [[ .Package ]].repository.[[ .Name ]]Repository;
import org.springframework.stereotype.Service;
import org.springframework.transaction.annotation.Transactional;

import java.util.List;

@Service
@Transactional
public class [[ .Name ]]Service {

    private final [[ .Name ]]Repository repository;
    private final [[ .Left ]]Repository [[ .LeftRepo ]];
[[- if not .SameSide ]]
    private final [[ .Right ]]Repository [[ .RightRepo ]];
[[- end ]]

    public [[ .Name ]]Service([[ .Name ]]Repository repository, [[ .Left ]]Repository [[ .LeftRepo ]][[ if not .SameSide ]], [[ .Right ]]Repository [[ .RightRepo ]][[ end ]]) {
        this.repository = repository;
        this.[[ .LeftRepo ]] = [[ .LeftRepo ]];
[[- if not .SameSide ]]
        this.[[ .RightRepo ]] = [[ .RightRepo ]];
[[- end ]]
    }

    @Transactional(readOnly = true)
    public List<[[ .Name ]]DTO> findAll() {
        return repository.findAll().stream().map([[ .Name ]]DTO::fromEntity).toList();
    }

    public [[ .Name ]]DTO create([[ .Name ]]DTO dto) {
        [[ .Left ]] [[ .LeftField ]] = [[ .LeftRepo ]].findById(dto.get[[ ucfirst .LeftID ]]())
                .orElseThrow(() -> new ResourceNotFoundException("[[ .Left ]]", dto.get[[ ucfirst .LeftID ]]()));
        [[ .Right ]] [[ .RightField ]] = [[ if .SameSide ]][[ .LeftRepo ]][[ else ]][[ .RightRepo ]][[ end ]].findById(dto.get[[ ucfirst .RightID ]]())
                .orElseThrow(() -> new ResourceNotFoundException("[[ .Right ]]", dto.get[[ ucfirst .RightID ]]()));
        [[ .Name ]] link = new [[ .Name ]]();
        link.set[[ ucfirst .LeftField ]]([[ .LeftField ]]);
        link.set[[ ucfirst .RightField ]]([[ .RightField ]]);
        return [[ .Name ]]DTO.fromEntity(repository.save(link));
    }

    public void delete(Long [[ .LeftID ]], Long [[ .RightID ]]) {
        [[ .Name ]].Key key = new [[ .Name ]].Key([[ .LeftID ]], [[ .RightID ]]);
        if (!repository.existsById(key)) {
            throw new ResourceNotFoundException("[[ .Name ]]", [[ .LeftID ]] + "/" + [[ .RightID ]]);
        }
        repository.deleteById(key);
    }
}
`

const tplLinkController = `package [[ .Package ]].controller;

import [[ .Package ]].dto.[[ .Name ]]DTO;
import [[ .Package ]].service.[[ .Name ]]Service;
import jakarta.validation.Valid;
import org.springframework.http.HttpStatus;
import org.springframework.http.ResponseEntity;
import org.springframework.web.bind.annotation.*;

import java.util.List;

@RestController
@RequestMapping("[[ .Route ]]")
public class [[ .Name ]]Controller {

    private final [[ .Name ]]Service service;

    public [[ .Name ]]Controller([[ .Name ]]Service service) {
        this.service = service;
    }

    @GetMapping
    public List<[[ .Name ]]DTO> findAll() {
        return service.findAll();
    }

    @PostMapping
    public ResponseEntity<[[ .Name ]]DTO> create(@Valid @RequestBody [[ .Name ]]DTO dto) {
        return ResponseEntity.status(HttpStatus.CREATED).body(service.create(dto));
    }

    @DeleteMapping("/{[[ .LeftID ]]}/{[[ .RightID ]]}")
    public ResponseEntity<Void> delete(@PathVariable Long [[ .LeftID ]], @PathVariable Long [[ .RightID ]]) {
        service.delete([[ .LeftID ]], [[ .RightID ]]);
        return ResponseEntity.noContent().build();
    }
}
`

const tplSkeleton = `package [[ .Package ]].[[ .SubPackage ]];
[[ if .Imports ]]
[[- range .Imports ]]
import [[ . ]];
[[- end ]]
[[ end ]]
[[- if eq (print .Stereotype) "service" ]]
import org.springframework.stereotype.Service;

@Service
public class [[ .Name ]] {
[[- else if eq (print .Stereotype) "controller" ]]
import org.springframework.web.bind.annotation.RestController;

@RestController
public class [[ .Name ]] {
[[- else ]]
public final class [[ .Name ]] {
[[- end ]]
[[- range .Fields ]]

    private [[ .Type ]] [[ .Name ]];
[[- end ]]
[[- if eq (print .Stereotype) "utility" ]]

    private [[ .Name ]]() {
    }
[[- range .Methods ]]

    public static [[ .ReturnType ]] [[ .Name ]]([[ params .Parameters ]]) {
        throw new UnsupportedOperationException("[[ .Name ]] is not implemented yet");
    }
[[- end ]]
[[- else ]]
[[- template "methods" .Methods ]]
[[- end ]]
}
`

const tplSkeletonInterface = `package [[ .Package ]].[[ .SubPackage ]];
[[ if .Imports ]]
[[- range .Imports ]]
import [[ . ]];
[[- end ]]
[[ end ]]
public interface [[ .Name ]] {
[[- range .Methods ]]

    [[ .ReturnType ]] [[ .Name ]]([[ params .Parameters ]]);
[[- end ]]
}
`
